// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ref = time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeBirthDate_AllFormsAgree(t *testing.T) {
	inputs := []string{
		"(1996-05-12) 12 May 1996 (age 28)",
		"(1996-05-12)",
		"12 May 1996",
		"12\u00a0May\u00a01996",
		"May 12, 1996",
		"born May  12,   1996 in Thessaloniki",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, ok := NormalizeBirthDate(in)
			require.True(t, ok)
			assert.Equal(t, "1996-05-12", got)
		})
	}
}

func TestNormalizeBirthDate_Priority(t *testing.T) {
	// The parenthesized ISO date wins over a conflicting prose date.
	got, ok := NormalizeBirthDate("(1990-01-02) 3 March 1991")
	require.True(t, ok)
	assert.Equal(t, "1990-01-02", got)

	// An unparseable day-month-year falls through to month-day-year.
	got, ok = NormalizeBirthDate("12 Smarch 1996, or June 3, 1995")
	require.True(t, ok)
	assert.Equal(t, "1995-06-03", got)
}

func TestNormalizeBirthDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "unknown", "1996", "32 May 1996", "Mayo 12, 1996x"} {
		_, ok := NormalizeBirthDate(in)
		assert.False(t, ok, in)
	}
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed", time.Date(1996, time.May, 12, 0, 0, 0, 0, time.UTC), 28},
		{"birthday today", time.Date(2000, time.October, 1, 0, 0, 0, 0, time.UTC), 24},
		{"birthday tomorrow", time.Date(2000, time.October, 2, 0, 0, 0, 0, time.UTC), 23},
		{"later month", time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC), 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, ref))
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"explicit annotation", "(1996-05-12) 12 May 1996 (age 28)", 28, true},
		{"nbsp annotation", "12 May 1996 (age\u00a028)", 28, true},
		{"annotation overrides computation", "12 May 1996 (age 30)", 30, true},
		{"computed from date", "12 May 1996", 28, true},
		{"computed before birthday", "December 25, 1996", 27, true},
		{"nothing to read", "unknown", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Age(tt.text, ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAge_ExplicitMatchesComputed(t *testing.T) {
	text := "(1996-05-12) 12 May 1996 (age 28)"
	explicit, ok := ExplicitAge(text)
	require.True(t, ok)
	dob, ok := ParseBirthDate(text)
	require.True(t, ok)
	assert.Equal(t, explicit, AgeAt(dob, ref))
}

func TestAgeAtDeath(t *testing.T) {
	n, ok := AgeAtDeath("(2001-03-07) 7 March 2001 (aged 62)")
	require.True(t, ok)
	assert.Equal(t, 62, n)

	_, ok = AgeAtDeath("7 March 2001")
	assert.False(t, ok)
}
