/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package report renders pairings and standings as fixed-width text tables.
package report

import (
	"fmt"
	"strings"

	"github.com/mikeb26/boylstonchessclub-swiss/internal"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

// Pairings formats one round of pairings followed by its byes, warnings
// and validation errors.
func Pairings(res *swiss.PairingResult) string {
	headers := []string{"Bd", "White", "Black"}
	var rows [][]string
	for _, p := range res.Pairings {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.BoardNumber),
			playerCell(p.White),
			playerCell(p.Black),
		})
	}
	for _, b := range res.Byes {
		rows = append(rows, []string{
			"",
			playerCell(b.Player),
			fmt.Sprintf("BYE(%v)", internal.ScoreToString(b.Points)),
		})
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %d Pairings:\n\n", res.Round))
	writeTable(&sb, headers, rows)
	for _, w := range res.Warnings {
		sb.WriteString(fmt.Sprintf("warning: %v\n", w))
	}
	for _, e := range res.ValidationErrors {
		sb.WriteString(fmt.Sprintf("error: %v\n", e))
	}

	return sb.String()
}

func playerCell(p *swiss.SwissPlayer) string {
	return fmt.Sprintf("%v (%d %v)", p.Name(), p.Player.Rating,
		internal.ScoreToString(p.Points))
}

// Standings formats ranked standings with one column per tiebreak in
// order. Tied players share a rank, which is printed once.
func Standings(rows []standings.PlayerStanding,
	order []standings.TiebreakType) string {

	headers := []string{"Place", "Name", "Score", "W-D-L"}
	for _, kind := range order {
		headers = append(headers, kind.Abbrev())
	}
	headers = append(headers, "Perf")

	var cells [][]string
	priorRank := 0
	for _, s := range rows {
		rank := ""
		if s.Rank != priorRank {
			rank = fmt.Sprintf("%d.", s.Rank)
			priorRank = s.Rank
		}
		row := []string{
			rank,
			s.Player.Name,
			internal.ScoreToString(s.Points),
			fmt.Sprintf("%d-%d-%d", s.Wins, s.Draws, s.Losses),
		}
		for _, tb := range s.TiebreakScores {
			row = append(row, tb.Display)
		}
		perf := "-"
		if s.PerformanceRating != nil {
			perf = fmt.Sprintf("%d", *s.PerformanceRating)
		}
		row = append(row, perf)
		cells = append(cells, row)
	}

	var sb strings.Builder
	writeTable(&sb, headers, cells)

	return sb.String()
}

// writeTable left-aligns every column to its widest cell.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], len([]rune(cell)))
		}
	}

	writeRow := func(row []string) {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(cell)
			if i < len(row)-1 {
				pad := colWidths[i] - len([]rune(cell)) + 2
				line.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString("\n")
}
