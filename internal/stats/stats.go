package stats

import (
	"time"

	"nutriTrackAPI/internal/badge"
)

// DayRecord is one calendar day of the month being aggregated. Built fresh
// per request from raw rows, never persisted. Exactly one record exists per
// day of the month, days without any data carry zeroed actuals and the
// default goals.
type DayRecord struct {
	Date          time.Time   `json:"date"`
	Calories      float64     `json:"calories"`
	Protein       float64     `json:"protein"`
	Carbs         float64     `json:"carbs"`
	Fat           float64     `json:"fat"`
	CaloriesGoal  float64     `json:"calories_goal"`
	ProteinGoal   float64     `json:"protein_goal"`
	CarbsGoal     float64     `json:"carbs_goal"`
	FatGoal       float64     `json:"fat_goal"`
	MealCount     int         `json:"meal_count"`
	QualityScore  float64     `json:"quality_score"`
	WaterIntakeMl float64     `json:"water_intake_ml"`
	Events        []*DayEvent `json:"events"`
}

type DayEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	Description *string   `json:"description,omitempty"`
}

// WeekWindow is a run of up to 7 consecutive days. The last window of a
// month may be shorter.
type WeekWindow struct {
	WeekNumber      int       `json:"week_number"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	AverageProgress float64   `json:"average_progress"`
	GoalDays        int       `json:"goal_days"`
	PerfectDays     int       `json:"perfect_days"`
	AvgCalories     float64   `json:"avg_calories"`
	AvgProtein      float64   `json:"avg_protein"`
	AvgCarbs        float64   `json:"avg_carbs"`
	AvgFat          float64   `json:"avg_fat"`
	Highlights      []string  `json:"highlights"`
	Challenges      []string  `json:"challenges"`
}

type MacroStats struct {
	Average          float64 `json:"average"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Total            float64 `json:"total"`
	GoalAverage      float64 `json:"goal_average"`
	AdherencePercent int     `json:"adherence_percent"`
}

type WaterStats struct {
	MacroStats
	DailyGoal float64 `json:"daily_goal"`
}

type NutritionBreakdown struct {
	Calories MacroStats `json:"calories"`
	Protein  MacroStats `json:"protein"`
	Carbs    MacroStats `json:"carbs"`
	Fat      MacroStats `json:"fat"`
	Water    WaterStats `json:"water"`
}

// Trend directions: increasing/decreasing/stable for macros, and
// improving/declining/stable for the overall goal-achievement rate.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendImproving  = "improving"
	TrendDeclining  = "declining"
)

type MacroTrends struct {
	Calories     string `json:"calories"`
	Protein      string `json:"protein"`
	Carbs        string `json:"carbs"`
	Fat          string `json:"fat"`
	Water        string `json:"water"`
	OverallTrend string `json:"overall_trend"`
}

// MonthComparison diffs current-month aggregates against the previous
// month, in each metric's native unit.
type MonthComparison struct {
	CaloriesDiff float64 `json:"calories_diff"`
	ProteinDiff  float64 `json:"protein_diff"`
	CarbsDiff    float64 `json:"carbs_diff"`
	FatDiff      float64 `json:"fat_diff"`
	WaterDiff    float64 `json:"water_diff"`
	ProgressDiff int     `json:"progress_diff"`
	StreakDiff   int     `json:"streak_diff"`
}

type MonthlyStats struct {
	Year                  int                `json:"year"`
	Month                 int                `json:"month"`
	MonthlyProgress       int                `json:"monthly_progress"`
	StreakDays            int                `json:"streak_days"`
	TotalGoalDays         int                `json:"total_goal_days"`
	TotalDays             int                `json:"total_days"`
	PerfectDays           int                `json:"perfect_days"`
	AverageCalories       float64            `json:"average_calories"`
	AverageProtein        float64            `json:"average_protein"`
	AverageCarbs          float64            `json:"average_carbs"`
	AverageFat            float64            `json:"average_fat"`
	AverageWater          float64            `json:"average_water"`
	AverageQualityScore   float64            `json:"average_quality_score"`
	AverageMealCount      float64            `json:"average_meal_count"`
	DailyData             []*DayRecord       `json:"daily_data"`
	NutritionBreakdown    NutritionBreakdown `json:"nutrition_breakdown"`
	MacroTrends           MacroTrends        `json:"macro_trends"`
	BestWeek              string             `json:"best_week"`
	BestWeekDetail        *WeekWindow        `json:"best_week_detail"`
	ChallengingWeek       string             `json:"challenging_week"`
	ChallengingWeekDetail *WeekWindow        `json:"challenging_week_detail"`
	WeeklyBreakdown       []*WeekWindow      `json:"weekly_breakdown"`
	Message               string             `json:"message"`
	Badges                []*badge.Badge     `json:"badges"`
	TotalPoints           int                `json:"total_points"`
	Comparison            MonthComparison    `json:"comparison"`
}
