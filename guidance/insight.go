package guidance

import (
	"fmt"

	"github.com/coreybb/glucolog/models"
)

// Insight messages for histories too short to compare.
const (
	insightNoHistory = "No history available yet."
	insightFirstOnly = "This is your first entry. Add more daily values to see comparisons."
)

// Insight compares the two most recent readings and reports the trend.
// The comparison deliberately spans all reading types: the history is a
// daily log, and the interesting signal is whether today moved relative
// to the last entry at all.
func Insight(history []models.Reading) string {
	if len(history) == 0 {
		return insightNoHistory
	}
	if len(history) < 2 {
		return insightFirstOnly
	}

	today := history[len(history)-1].Value
	yesterday := history[len(history)-2].Value

	switch {
	case today < yesterday:
		return fmt.Sprintf("Good progress. Today's sugar is lower than yesterday by %d mg/dL.", int(yesterday-today))
	case today > yesterday:
		return fmt.Sprintf("Attention needed. Today's sugar is higher than yesterday by %d mg/dL.", int(today-yesterday))
	default:
		return "Your sugar level is the same as yesterday. Maintain your routine."
	}
}
