package guidance

import "github.com/coreybb/glucolog/models"

// Threshold holds the boundaries (mg/dL) between status bands for one
// reading type. Values in [Low, NormalMax] are normal; (NormalMax,
// BorderlineMax] borderline; above that high; below Low low.
type Threshold struct {
	Low           float64
	NormalMax     float64
	BorderlineMax float64
}

// Emergency cutoffs that apply regardless of reading type.
const (
	CriticalLowBelow  = 40.0
	CriticalHighAbove = 400.0
)

// Medical thresholds per reading type. Fixed at compile time; the app has
// no facility to edit them.
var thresholds = map[models.ReadingType]Threshold{
	models.ReadingTypeFasting:       {Low: 70, NormalMax: 100, BorderlineMax: 125},
	models.ReadingTypePostBreakfast: {Low: 80, NormalMax: 140, BorderlineMax: 160},
	models.ReadingTypePostLunch:     {Low: 80, NormalMax: 140, BorderlineMax: 160},
	models.ReadingTypePostDinner:    {Low: 80, NormalMax: 140, BorderlineMax: 160},
	models.ReadingTypeRandom:        {Low: 70, NormalMax: 120, BorderlineMax: 140},
}

// ThresholdFor returns the threshold row for the given reading type.
// Unknown types fall back to the random-reading thresholds, matching how
// legacy history rows without a type are treated.
func ThresholdFor(rt models.ReadingType) Threshold {
	if t, ok := thresholds[rt]; ok {
		return t
	}
	return thresholds[models.ReadingTypeRandom]
}
