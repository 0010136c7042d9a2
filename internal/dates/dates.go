// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates normalizes birth-date and age text found on player pages.
//
// Three surface forms are accepted, tried in order: a parenthesized ISO
// date "(1996-05-12)", "12 May 1996", and "May 12, 1996". Ages come from an
// explicit "(age 28)" annotation when present and are otherwise computed
// against a caller-supplied reference instant.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the canonical calendar date form.
const ISOLayout = "2006-01-02"

// dateForm is one accepted surface form: a pattern locating the date and
// the layout parsing the captured text.
type dateForm struct {
	pattern *regexp.Regexp
	layout  string
}

var dateForms = []dateForm{
	{regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)`), ISOLayout},
	{regexp.MustCompile(`\b(\d{1,2} [A-Za-z]+ \d{4})\b`), "2 January 2006"},
	{regexp.MustCompile(`\b([A-Za-z]+ \d{1,2}, \d{4})\b`), "January 2, 2006"},
}

var (
	ageAnnotation  = regexp.MustCompile(`\(age (\d+)\)`)
	agedAnnotation = regexp.MustCompile(`\(aged (\d+)\)`)
)

// Collapse replaces runs of whitespace, including non-breaking spaces,
// with a single space and trims the result.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseBirthDate finds the first accepted date form in text that parses.
func ParseBirthDate(text string) (time.Time, bool) {
	text = Collapse(text)
	for _, f := range dateForms {
		m := f.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, err := time.Parse(f.layout, m[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDayMonthYear parses a "12 May 1996" phrase.
func ParseDayMonthYear(s string) (time.Time, bool) {
	t, err := time.Parse("2 January 2006", Collapse(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders t as a canonical calendar date.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// NormalizeBirthDate returns the canonical form of the birth date in text.
func NormalizeBirthDate(text string) (string, bool) {
	t, ok := ParseBirthDate(text)
	if !ok {
		return "", false
	}
	return FormatISO(t), true
}

// ExplicitAge reads an "(age N)" annotation.
func ExplicitAge(text string) (int, bool) {
	return annotated(ageAnnotation, text)
}

// AgeAtDeath reads an "(aged N)" annotation from a date-of-death value.
func AgeAtDeath(text string) (int, bool) {
	return annotated(agedAnnotation, text)
}

func annotated(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(Collapse(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// AgeAt returns the whole years between dob and ref. The year difference
// is reduced by one when ref falls before the birthday in ref's year.
func AgeAt(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	return age
}

// Age returns the explicit age annotation in text, or the age computed
// from the birth date in text at ref. ok is false when neither exists.
func Age(text string, ref time.Time) (age int, ok bool) {
	if n, ok := ExplicitAge(text); ok {
		return n, true
	}
	dob, ok := ParseBirthDate(text)
	if !ok {
		return 0, false
	}
	return AgeAt(dob, ref), true
}
