package guidance

import "github.com/coreybb/glucolog/models"

// Status is the classification of one reading against the threshold table.
type Status string

const (
	StatusCriticalLow  Status = "CRITICAL LOW"
	StatusLow          Status = "LOW"
	StatusNormal       Status = "NORMAL"
	StatusBorderline   Status = "BORDERLINE"
	StatusHigh         Status = "HIGH"
	StatusCriticalHigh Status = "CRITICAL HIGH"
)

// Severity orders statuses by distance from the normal band. It is
// monotonic non-decreasing as a value moves away from normal in either
// direction: NORMAL < BORDERLINE < LOW/HIGH < critical.
func (s Status) Severity() int {
	switch s {
	case StatusNormal:
		return 0
	case StatusBorderline:
		return 1
	case StatusLow, StatusHigh:
		return 2
	case StatusCriticalLow, StatusCriticalHigh:
		return 3
	}
	return 0
}

// IsEmergency reports whether the status calls for immediate medical help.
func (s Status) IsEmergency() bool {
	return s == StatusCriticalLow || s == StatusCriticalHigh
}

// Classify maps a reading value to its status using the threshold table
// for the given reading type. The emergency cutoffs apply to every type.
func Classify(rt models.ReadingType, value float64) Status {
	if value < CriticalLowBelow {
		return StatusCriticalLow
	}
	if value > CriticalHighAbove {
		return StatusCriticalHigh
	}

	t := ThresholdFor(rt)
	switch {
	case value < t.Low:
		return StatusLow
	case value <= t.NormalMax:
		return StatusNormal
	case value <= t.BorderlineMax:
		return StatusBorderline
	default:
		return StatusHigh
	}
}

// ClassifyReading classifies a stored reading with its own type's thresholds.
func ClassifyReading(r models.Reading) Status {
	return Classify(r.Type, r.Value)
}
