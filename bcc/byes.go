/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	numOnlyRe   = regexp.MustCompile(`^\d+$`)
	roundListRe = regexp.MustCompile(`(?i)\b(?:round|rnd|rounds|rnds)\b[\s:]*((?:\d+(?:\s*[,&;/]\s*\d+)*))`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// RequestedByeRounds extracts the rounds named in a free-form bye request
// such as "1", "round 1,5" or "rnds 1&4".
func RequestedByeRounds(req string) []int {
	s := strings.TrimSpace(req)
	if s == "" {
		return nil
	}
	if numOnlyRe.MatchString(s) {
		n, _ := strconv.Atoi(s)
		return []int{n}
	}

	var rounds []int
	for _, matches := range roundListRe.FindAllStringSubmatch(s, -1) {
		for _, m := range digitsRe.FindAllString(matches[1], -1) {
			if n, err := strconv.Atoi(m); err == nil && !slices.Contains(rounds, n) {
				rounds = append(rounds, n)
			}
		}
	}

	return rounds
}

func ByeRequested(req string, round int) bool {
	return slices.Contains(RequestedByeRounds(req), round)
}
