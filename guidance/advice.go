package guidance

import (
	"fmt"
	"strings"

	"github.com/coreybb/glucolog/models"
)

// Advice is the diet and activity guidance attached to a classification.
type Advice struct {
	Meaning   string   `json:"meaning"`
	DietDo    []string `json:"diet_do"`
	DietAvoid []string `json:"diet_avoid"`
	Activity  string   `json:"activity"`
	Focus     string   `json:"focus"`
}

// AdviceFor returns the guidance text for a status. The reading type is
// only used to phrase the meaning line; the recommendations themselves
// depend on the status alone.
func AdviceFor(status Status, rt models.ReadingType) Advice {
	label := strings.ToLower(rt.DisplayLabel())

	switch status {
	case StatusCriticalLow:
		return Advice{
			Meaning:  "Your blood sugar is dangerously low. Seek immediate medical help.",
			DietDo:   []string{"Take a fast-acting sugar source immediately."},
			Activity: "Avoid any physical activity.",
			Focus:    "Restore blood sugar immediately.",
		}
	case StatusLow:
		return Advice{
			Meaning:  fmt.Sprintf("Your blood sugar is below the normal range for %s.", label),
			DietDo:   []string{"Take a quick sugar source such as juice or glucose."},
			Activity: "Avoid physical activity.",
			Focus:    "Restore blood sugar safely.",
		}
	case StatusNormal:
		return Advice{
			Meaning:   fmt.Sprintf("Your blood sugar is within the healthy range for %s.", label),
			DietDo:    []string{"Continue balanced home-cooked meals."},
			DietAvoid: []string{"Avoid excess sugar."},
			Activity:  "15-20 minutes of light walking.",
			Focus:     "Maintain a healthy routine.",
		}
	case StatusBorderline:
		return Advice{
			Meaning:   fmt.Sprintf("Your blood sugar is slightly elevated for %s.", label),
			DietDo:    []string{"Prefer light meals."},
			DietAvoid: []string{"Reduce sugar and refined carbohydrates."},
			Activity:  "20 minutes of walking.",
			Focus:     "Improve sugar control.",
		}
	case StatusCriticalHigh:
		return Advice{
			Meaning:  "Your blood sugar is extremely high. Seek medical attention immediately.",
			Activity: "Avoid physical activity until seen by a professional.",
			Focus:    "Seek medical attention immediately.",
		}
	default: // StatusHigh
		return Advice{
			Meaning:   fmt.Sprintf("Your blood sugar is high for %s. Medical attention may be needed if this persists.", label),
			DietDo:    []string{"Eat light, home-cooked meals."},
			DietAvoid: []string{"Avoid sweets, sugary drinks, and high-carb foods."},
			Activity:  "25-30 minutes of light to moderate walking.",
			Focus:     "Reduce sugar levels safely.",
		}
	}
}
