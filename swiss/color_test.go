/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

const (
	W = chess.White
	B = chess.Black
)

func TestClassifyColorPreference(t *testing.T) {
	cases := []struct {
		hist []chess.Color
		want ColorPreference
	}{
		{nil, ColorPreference{}},
		{[]chess.Color{W}, ColorPreference{}},
		{[]chess.Color{W, B, W}, ColorPreference{}},
		{[]chess.Color{W, W}, ColorPreference{PreferenceStrong, B}},
		{[]chess.Color{B, B}, ColorPreference{PreferenceStrong, W}},
		{[]chess.Color{W, W, W}, ColorPreference{PreferenceAbsolute, B}},
		{[]chess.Color{W, B, B, B}, ColorPreference{PreferenceAbsolute, W}},
		{[]chess.Color{W, W, B, W}, ColorPreference{PreferenceMild, B}},
		{[]chess.Color{B, B, W, B}, ColorPreference{PreferenceMild, W}},
	}
	for _, c := range cases {
		got := ClassifyColorPreference(c.hist)
		if got.Strength != c.want.Strength {
			t.Errorf("ClassifyColorPreference(%v) = %v; want %v", c.hist, got,
				c.want)
			continue
		}
		if got.Strength != PreferenceNone && got.Color != c.want.Color {
			t.Errorf("ClassifyColorPreference(%v) = %v; want %v", c.hist, got,
				c.want)
		}
	}
}

func TestColorCompatibility(t *testing.T) {
	pref := func(s PreferenceStrength, c chess.Color) ColorPreference {
		return ColorPreference{Strength: s, Color: c}
	}
	cases := []struct {
		a, b ColorPreference
		want float64
	}{
		{pref(PreferenceAbsolute, W), pref(PreferenceAbsolute, B), 200},
		{pref(PreferenceAbsolute, W), pref(PreferenceMild, B), 180},
		{pref(PreferenceStrong, B), pref(PreferenceStrong, W), 120},
		{pref(PreferenceStrong, W), pref(PreferenceMild, B), 60},
		{pref(PreferenceMild, W), pref(PreferenceMild, B), 60},
		{pref(PreferenceAbsolute, W), pref(PreferenceAbsolute, W), -100},
		{pref(PreferenceStrong, B), pref(PreferenceStrong, B), -50},
		{pref(PreferenceAbsolute, W), pref(PreferenceMild, W), -10},
		{pref(PreferenceAbsolute, W), ColorPreference{}, 0},
	}
	for _, c := range cases {
		if got := colorCompatibility(c.a, c.b); got != c.want {
			t.Errorf("colorCompatibility(%v, %v) = %v; want %v", c.a, c.b, got,
				c.want)
		}
		if got := colorCompatibility(c.b, c.a); got != c.want {
			t.Errorf("colorCompatibility(%v, %v) = %v; want %v", c.b, c.a, got,
				c.want)
		}
	}
}

func TestAssignColors(t *testing.T) {
	mk := func(id chess.PlayerID, rating int, cp ColorPreference) *SwissPlayer {
		return &SwissPlayer{Player: chess.Player{ID: id}, Rating: rating,
			ColorPreference: cp}
	}
	cases := []struct {
		name      string
		a, b      *SwissPlayer
		wantWhite chess.PlayerID
	}{
		{"higher rating white", mk(1, 1400, ColorPreference{}),
			mk(2, 1600, ColorPreference{}), 2},
		{"equal rating first", mk(1, 1500, ColorPreference{}),
			mk(2, 1500, ColorPreference{}), 1},
		{"strong black yields", mk(1, 1800, ColorPreference{PreferenceStrong, B}),
			mk(2, 1500, ColorPreference{}), 2},
		{"absolute beats strong", mk(1, 1800, ColorPreference{PreferenceStrong, W}),
			mk(2, 1500, ColorPreference{PreferenceAbsolute, W}), 2},
		{"mild ignored", mk(1, 1400, ColorPreference{PreferenceMild, W}),
			mk(2, 1500, ColorPreference{}), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			white, black := AssignColors(c.a, c.b)
			if white.ID() != c.wantWhite {
				t.Errorf("white = %v; want %v", white.ID(), c.wantWhite)
			}
			if white == black {
				t.Errorf("same player on both sides")
			}
		})
	}
}
