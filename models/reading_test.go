package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReadingType(t *testing.T) {
	for _, rt := range AllReadingTypes {
		parsed, err := ParseReadingType(string(rt))
		require.NoError(t, err)
		assert.Equal(t, rt, parsed)
	}

	_, err := ParseReadingType("before_bed")
	assert.Error(t, err)

	_, err = ParseReadingType("")
	assert.Error(t, err)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Fasting (Empty Stomach)", ReadingTypeFasting.DisplayLabel())
	assert.Equal(t, "After Breakfast", ReadingTypePostBreakfast.DisplayLabel())
	assert.Equal(t, "Random", ReadingTypeRandom.DisplayLabel())
}

func TestReadingValidate(t *testing.T) {
	base := Reading{
		Timestamp: time.Now(),
		Type:      ReadingTypeFasting,
		Value:     95,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name    string
		mutate  func(*Reading)
		wantErr bool
	}{
		{"value at lower bound", func(r *Reading) { r.Value = MinReadingValue }, false},
		{"value at upper bound", func(r *Reading) { r.Value = MaxReadingValue }, false},
		{"zero value", func(r *Reading) { r.Value = 0 }, true},
		{"negative value", func(r *Reading) { r.Value = -10 }, true},
		{"value above bound", func(r *Reading) { r.Value = 601 }, true},
		{"unknown type", func(r *Reading) { r.Type = "before_bed" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
