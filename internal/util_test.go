/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"RUFUS BEHR", "Rufus Behr"},
		{"  jane   doe ", "Jane Doe"},
		{"JOHN o'brien-SMITH", "John O'Brien-Smith"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestScoreToString(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "½"},
		{2, "2"},
		{2.5, "2½"},
	}
	for _, c := range cases {
		if got := ScoreToString(c.in); got != c.want {
			t.Errorf("ScoreToString(%v) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null"} {
		d, err := ParseDateOrZero(s)
		if err != nil || !d.IsZero() {
			t.Errorf("ParseDateOrZero(%q) = %v, %v; want zero", s, d, err)
		}
	}
	d, err := ParseDateOrZero("2025-06-24")
	if err != nil {
		t.Fatalf("ParseDateOrZero: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 6 || d.Day() != 24 {
		t.Errorf("parsed %v", d)
	}
}
