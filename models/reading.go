package models

import (
	"fmt"
	"time"
)

// ReadingType identifies the condition under which a blood sugar reading
// was taken. The classification thresholds differ per type.
type ReadingType string

const (
	ReadingTypeFasting       ReadingType = "fasting"
	ReadingTypePostBreakfast ReadingType = "post_breakfast"
	ReadingTypePostLunch     ReadingType = "post_lunch"
	ReadingTypePostDinner    ReadingType = "post_dinner"
	ReadingTypeRandom        ReadingType = "random"
)

// Accepted bounds for a reading value in mg/dL. Values outside this range
// are rejected as input errors rather than classified.
const (
	MinReadingValue = 1.0
	MaxReadingValue = 600.0
)

// AllReadingTypes lists every valid reading type in display order.
var AllReadingTypes = []ReadingType{
	ReadingTypeFasting,
	ReadingTypePostBreakfast,
	ReadingTypePostLunch,
	ReadingTypePostDinner,
	ReadingTypeRandom,
}

// DisplayLabel returns the human-readable label for the reading type.
func (rt ReadingType) DisplayLabel() string {
	switch rt {
	case ReadingTypeFasting:
		return "Fasting (Empty Stomach)"
	case ReadingTypePostBreakfast:
		return "After Breakfast"
	case ReadingTypePostLunch:
		return "After Lunch"
	case ReadingTypePostDinner:
		return "After Dinner"
	case ReadingTypeRandom:
		return "Random"
	}
	return string(rt)
}

// ParseReadingType converts a wire/storage string into a ReadingType.
func ParseReadingType(s string) (ReadingType, error) {
	switch ReadingType(s) {
	case ReadingTypeFasting, ReadingTypePostBreakfast, ReadingTypePostLunch,
		ReadingTypePostDinner, ReadingTypeRandom:
		return ReadingType(s), nil
	}
	return "", fmt.Errorf("unknown reading type %q", s)
}

// Reading is a single blood sugar measurement. Readings are append-only:
// created on form submission, never mutated or deleted by the app.
type Reading struct {
	ID        string      `json:"id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Type      ReadingType `json:"reading_type"`
	Value     float64     `json:"value"`
}

// Validate checks that the reading's type is known and its value is within
// the accepted mg/dL bounds.
func (r *Reading) Validate() error {
	if _, err := ParseReadingType(string(r.Type)); err != nil {
		return err
	}
	if r.Value < MinReadingValue || r.Value > MaxReadingValue {
		return fmt.Errorf("reading value must be between %.0f and %.0f mg/dL, got %g",
			MinReadingValue, MaxReadingValue, r.Value)
	}
	return nil
}
