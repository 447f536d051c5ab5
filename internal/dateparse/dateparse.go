// Package dateparse resolves free-form statement and notification dates
// against ordered, per-source lists of layouts. Parsing is strict: a layout
// either matches the text exactly or the next one is tried. "No match" is an
// error the caller must treat as a hard rejection of the candidate, never as
// "today".
package dateparse

import (
	"errors"
	"strings"
	"time"
)

// ErrNoMatch is returned when no layout in the list parses the input.
var ErrNoMatch = errors.New("dateparse: no layout matched")

// Layout lists for the registered source formats. Order matters: the most
// common representation for the source comes first.
var (
	// HDFCLayouts covers HDFC statement exports ("22 Jan 2024",
	// "22-01-2024", "22/01/2024").
	HDFCLayouts = []string{"02 Jan 2006", "2 Jan 2006", "02-01-2006", "02/01/2006"}

	// ICICILayouts covers ICICI exports ("Jan 22, 2024" and the
	// slash-separated fallback).
	ICICILayouts = []string{"Jan 02, 2006", "Jan 2, 2006", "02/01/2006"}

	// AxisLayouts covers Axis exports ("22-01-2024", "22 Jan 2006").
	AxisLayouts = []string{"02-01-2006", "02 Jan 2006"}

	// SBILayouts covers SBI exports ("22 Jan 2024", "22/01/2024",
	// "22-Jan-2024").
	SBILayouts = []string{"02 Jan 2006", "02/01/2006", "02-Jan-2006"}

	// PaytmLayouts covers Paytm statement text ("22 Jan 2024 10:30 AM"
	// before the date-only form, since the time suffix is usually present).
	PaytmLayouts = []string{"02 Jan 2006 03:04 PM", "02 Jan 2006"}

	// GenericLayouts is the kitchen-sink list the generic extractor uses.
	GenericLayouts = []string{
		"02/01/2006", "02-01-2006", "02 Jan 2006", "2 Jan 2006",
		"Jan 02, 2006", "2006-01-02", "02-Jan-2006", "02.01.2006",
	}
)

// Resolve tries each layout in order and returns the instant from the first
// successful parse. The input is trimmed but otherwise untouched.
func Resolve(raw string, layouts []string) (time.Time, error) {
	return ResolveIn(raw, layouts, time.Local)
}

// ResolveIn is Resolve with an explicit location for layouts that carry no
// zone of their own.
func ResolveIn(raw string, layouts []string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrNoMatch
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		return t, nil
	}
	return time.Time{}, ErrNoMatch
}
