package services

import (
	"math"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"
)

// ThresholdBand classifies how close a nutrient's intake is to its daily
// goal. Bands are ordered; within a day a user only moves forward.
type ThresholdBand int

const (
	BandNone      ThresholdBand = iota // below 80%
	BandMilestone                      // 80–89%
	BandAlmost                         // 90–99%
	BandAchieved                       // 100% and above
)

func (b ThresholdBand) String() string {
	switch b {
	case BandMilestone:
		return "milestone"
	case BandAlmost:
		return "almost"
	case BandAchieved:
		return "achieved"
	default:
		return "none"
	}
}

// ClassifyBand applies the fixed 80/90/100 cutoffs (inclusive lower bounds).
func ClassifyBand(pct float64) ThresholdBand {
	switch {
	case pct >= 100:
		return BandAchieved
	case pct >= 90:
		return BandAlmost
	case pct >= 80:
		return BandMilestone
	default:
		return BandNone
	}
}

// AchievementEvent is one non-none classification produced by an
// evaluation pass. It is ephemeral; the tracker decides novelty.
type AchievementEvent struct {
	UserID      uint
	GoalType    string
	Date        string // YYYY-MM-DD, server-local
	Percentage  float64
	ActualValue float64
	GoalValue   float64
	Band        ThresholdBand
}

// trackedNutrients fixes the evaluation order so repeated runs emit
// events deterministically.
var trackedNutrients = []string{"calories", "protein", "carbs", "fat", "sodium", "sugar"}

type NutrientTotals map[string]float64

type NutrientGoals map[string]float64

// GoalsToMap flattens a DailyGoal row for the evaluator.
func GoalsToMap(g models.DailyGoal) NutrientGoals {
	return NutrientGoals{
		"calories": g.Calories,
		"protein":  g.Protein,
		"carbs":    g.Carbs,
		"fat":      g.Fat,
		"sodium":   g.Sodium,
		"sugar":    g.Sugar,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// EvaluateGoals is a pure function: no reads, no writes, no clock.
// Nutrients with no positive goal are skipped entirely, so the division
// below never sees a zero goal. Percentages are not capped at 100; a
// 142.7% day reports 142.7.
func EvaluateGoals(userID uint, date string, actuals NutrientTotals, goals NutrientGoals) []AchievementEvent {
	var events []AchievementEvent
	for _, nutrient := range trackedNutrients {
		goal := goals[nutrient]
		if goal <= 0 {
			continue
		}

		actual := actuals[nutrient]
		pct := round1(actual / goal * 100)
		band := ClassifyBand(pct)
		if band == BandNone {
			continue
		}

		events = append(events, AchievementEvent{
			UserID:      userID,
			GoalType:    nutrient,
			Date:        date,
			Percentage:  pct,
			ActualValue: round1(actual),
			GoalValue:   goal,
			Band:        band,
		})
	}
	return events
}
