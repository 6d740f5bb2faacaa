package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreybb/glucolog/models"
)

func TestAdviceForMentionsReadingType(t *testing.T) {
	a := AdviceFor(StatusNormal, models.ReadingTypePostLunch)
	assert.Contains(t, a.Meaning, "after lunch")
	assert.NotEmpty(t, a.DietDo)
	assert.NotEmpty(t, a.Activity)
	assert.NotEmpty(t, a.Focus)
}

func TestAdviceForEveryStatusIsComplete(t *testing.T) {
	statuses := []Status{
		StatusCriticalLow, StatusLow, StatusNormal,
		StatusBorderline, StatusHigh, StatusCriticalHigh,
	}
	for _, s := range statuses {
		a := AdviceFor(s, models.ReadingTypeFasting)
		assert.NotEmpty(t, a.Meaning, "status %s", s)
		assert.NotEmpty(t, a.Activity, "status %s", s)
		assert.NotEmpty(t, a.Focus, "status %s", s)
	}
}

func TestEmergencyStatuses(t *testing.T) {
	assert.True(t, StatusCriticalLow.IsEmergency())
	assert.True(t, StatusCriticalHigh.IsEmergency())
	assert.False(t, StatusHigh.IsEmergency())
	assert.False(t, StatusNormal.IsEmergency())
}
