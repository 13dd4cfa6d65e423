package utils

import "math"

// QualityScore grades one day's nutrition adherence on a 1-10 scale.
// Calories carry the heaviest penalty weight (2), then protein (1.5), then
// water (1). Both under- and over-consumption are penalized. A day with no
// logged calories scores exactly 0, meaning "no data" rather than a bad day.
func QualityScore(calories, caloriesGoal, protein, proteinGoal, waterMl float64) float64 {
	if calories == 0 {
		return 0
	}

	var caloriesScore, proteinScore float64
	if caloriesGoal > 0 {
		caloriesScore = math.Min(calories/caloriesGoal, 1.5)
	}
	if proteinGoal > 0 {
		proteinScore = math.Min(protein/proteinGoal, 1.2)
	}
	waterScore := math.Min(waterMl/2000, 1.0)

	penalty := math.Abs(1-caloriesScore)*2 + math.Abs(1-proteinScore)*1.5 + math.Abs(1-waterScore)

	score := math.Max(1, 10-penalty)
	if score > 10 {
		score = 10
	}
	return math.Round(score*10) / 10
}
