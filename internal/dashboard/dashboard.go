package dashboard

import "time"

// Summary is the "today" view the mobile home screen renders.
type Summary struct {
	Date            time.Time `json:"date"`
	Calories        float64   `json:"calories"`
	CaloriesGoal    float64   `json:"calories_goal"`
	Protein         float64   `json:"protein"`
	ProteinGoal     float64   `json:"protein_goal"`
	Carbs           float64   `json:"carbs"`
	CarbsGoal       float64   `json:"carbs_goal"`
	Fat             float64   `json:"fat"`
	FatGoal         float64   `json:"fat_goal"`
	WaterIntakeMl   float64   `json:"water_intake_ml"`
	WaterGoalMl     float64   `json:"water_goal_ml"`
	MealCount       int       `json:"meal_count"`
	QualityScore    float64   `json:"quality_score"`
	CalorieProgress int       `json:"calorie_progress"`
}
