package services

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/stats"
	"nutriTrackAPI/internal/water"
)

func ts(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func mealRow(uploadTime *time.Time, period string, calories, protein, carbs, fat float64) *meal.Meal {
	return &meal.Meal{
		ID:         uuid.New(),
		Name:       "test meal",
		Period:     period,
		Calories:   calories,
		Protein:    protein,
		Carbs:      carbs,
		Fat:        fat,
		UploadTime: uploadTime,
	}
}

func dayRec(year int, month time.Month, day int, calories, caloriesGoal float64) *stats.DayRecord {
	return &stats.DayRecord{
		Date:         time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Calories:     calories,
		CaloriesGoal: caloriesGoal,
		ProteinGoal:  goal.DefaultProtein,
		CarbsGoal:    goal.DefaultCarbs,
		FatGoal:      goal.DefaultFat,
	}
}

func TestMonthRange(t *testing.T) {
	from, to := monthRange(2024, 2)

	wantFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("expected range start %v, got %v", wantFrom, from)
	}
	wantTo := time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC)
	if !to.Equal(wantTo) {
		t.Errorf("expected range end %v, got %v", wantTo, to)
	}
}

func TestPreviousMonthJanuaryRollover(t *testing.T) {
	year, month := previousMonth(2024, 1)
	if year != 2023 || month != 12 {
		t.Errorf("expected 2023-12, got %d-%d", year, month)
	}

	year, month = previousMonth(2024, 6)
	if year != 2024 || month != 5 {
		t.Errorf("expected 2024-5, got %d-%d", year, month)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 6, 30},
		{2024, 12, 31},
	}
	for _, c := range cases {
		if got := daysInMonth(c.year, c.month); got != c.want {
			t.Errorf("daysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestBucketizeMonthContiguousDays(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 2, true)

	if len(days) != 29 {
		t.Fatalf("expected 29 records for February 2024, got %d", len(days))
	}
	for i, d := range days {
		want := time.Date(2024, 2, i+1, 0, 0, 0, 0, time.UTC)
		if !d.Date.Equal(want) {
			t.Errorf("day %d: expected date %v, got %v", i+1, want, d.Date)
		}
		if d.CaloriesGoal != goal.DefaultCalories || d.ProteinGoal != goal.DefaultProtein {
			t.Errorf("day %d: expected default goals, got %v/%v", i+1, d.CaloriesGoal, d.ProteinGoal)
		}
		if d.QualityScore != 0 {
			t.Errorf("day %d: expected quality 0 on an empty day, got %v", i+1, d.QualityScore)
		}
		if d.Events == nil {
			t.Errorf("day %d: events should be an empty slice, not nil", i+1)
		}
	}
}

func TestBucketizeMonthSumsMealsPerDay(t *testing.T) {
	meals := []*meal.Meal{
		mealRow(ts(2024, 6, 5), "breakfast", 500, 30, 60, 15),
		mealRow(ts(2024, 6, 5), "dinner", 800, 50, 80, 25),
		mealRow(ts(2024, 6, 5), "snack", 200, 5, 30, 8),
	}

	days := bucketizeMonth(meals, nil, nil, nil, 2024, 6, true)

	d := days[4]
	if d.Calories != 1500 {
		t.Errorf("expected 1500 calories on June 5, got %v", d.Calories)
	}
	if d.Protein != 85 {
		t.Errorf("expected 85 protein, got %v", d.Protein)
	}
	// snacks do not count toward the meal count
	if d.MealCount != 2 {
		t.Errorf("expected meal count 2, got %d", d.MealCount)
	}
}

func TestBucketizeMonthDropsRowsWithoutTimestamp(t *testing.T) {
	meals := []*meal.Meal{
		mealRow(nil, "lunch", 700, 40, 70, 20),
		mealRow(&time.Time{}, "dinner", 900, 60, 90, 30),
	}

	days := bucketizeMonth(meals, nil, nil, nil, 2024, 6, true)

	if len(days) != 30 {
		t.Fatalf("expected 30 records, got %d", len(days))
	}
	for _, d := range days {
		if d.Calories != 0 {
			t.Errorf("day %v: meals without a timestamp must not be bucketed, got %v calories", d.Date, d.Calories)
		}
	}
}

func TestBucketizeMonthAppliesGoalFallbacks(t *testing.T) {
	goals := []*goal.DailyGoal{
		{ID: uuid.New(), Date: ts(2024, 6, 10), Calories: 1800, Protein: 0, Carbs: 220, Fat: 0},
	}

	days := bucketizeMonth(nil, goals, nil, nil, 2024, 6, false)

	d := days[9]
	if d.CaloriesGoal != 1800 {
		t.Errorf("expected stored calorie goal 1800, got %v", d.CaloriesGoal)
	}
	if d.ProteinGoal != goal.DefaultProtein {
		t.Errorf("expected zero protein goal to fall back to %v, got %v", float64(goal.DefaultProtein), d.ProteinGoal)
	}
	if d.CarbsGoal != 220 {
		t.Errorf("expected stored carbs goal 220, got %v", d.CarbsGoal)
	}
	if d.FatGoal != goal.DefaultFat {
		t.Errorf("expected zero fat goal to fall back to %v, got %v", float64(goal.DefaultFat), d.FatGoal)
	}
}

func TestBucketizeMonthWater(t *testing.T) {
	waters := []*water.Intake{
		{ID: uuid.New(), Date: ts(2024, 6, 3), AmountMl: 2500},
	}

	days := bucketizeMonth(nil, nil, waters, nil, 2024, 6, false)

	if days[2].WaterIntakeMl != 2500 {
		t.Errorf("expected 2500ml on June 3, got %v", days[2].WaterIntakeMl)
	}
	if days[3].WaterIntakeMl != 0 {
		t.Errorf("expected 0ml on June 4, got %v", days[3].WaterIntakeMl)
	}
}

func TestMetCalorieGoal(t *testing.T) {
	d := dayRec(2024, 6, 1, 1800, 2000)
	if !metCalorieGoal(d) {
		t.Error("1800 of 2000 is exactly the 90% threshold and should count")
	}

	d = dayRec(2024, 6, 1, 1799, 2000)
	if metCalorieGoal(d) {
		t.Error("1799 of 2000 is below the threshold and should not count")
	}

	// a zero goal can never be met, regardless of intake
	d = dayRec(2024, 6, 1, 5000, 0)
	if metCalorieGoal(d) {
		t.Error("a day with a zero calorie goal must not count as a goal day")
	}
}

func TestComputeAggregatesPerfectMonth(t *testing.T) {
	days := make([]*stats.DayRecord, 0, 30)
	for d := 1; d <= 30; d++ {
		rec := dayRec(2024, 6, d, 2000, 2000)
		rec.Protein = 150
		rec.WaterIntakeMl = 2000
		rec.QualityScore = 10
		rec.MealCount = 3
		days = append(days, rec)
	}

	today := time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC)
	agg := computeAggregates(days, today)

	if agg.goalDays != 30 {
		t.Errorf("expected 30 goal days, got %d", agg.goalDays)
	}
	if agg.perfectDays != 30 {
		t.Errorf("expected 30 perfect days, got %d", agg.perfectDays)
	}
	if agg.monthlyProgress != 100 {
		t.Errorf("expected 100%% monthly progress, got %d", agg.monthlyProgress)
	}
	if agg.streakDays != 30 {
		t.Errorf("expected a 30 day streak, got %d", agg.streakDays)
	}
	if agg.avgCalories != 2000 || agg.avgQuality != 10 || agg.avgMealCount != 3 {
		t.Errorf("unexpected averages: %+v", agg)
	}
}

func TestComputeAggregatesEmptyMonth(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, true)

	agg := computeAggregates(days, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	if agg.daysWithData != 0 || agg.goalDays != 0 || agg.streakDays != 0 {
		t.Errorf("expected all-zero aggregates for an empty month, got %+v", agg)
	}
	if agg.monthlyProgress != 0 {
		t.Errorf("expected 0%% progress, got %d", agg.monthlyProgress)
	}
	if agg.avgCalories != 0 {
		t.Errorf("expected 0 average calories, got %v", agg.avgCalories)
	}
}

func TestCurrentStreak(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, false)
	for _, d := range []int{8, 9, 10} {
		days[d-1].Calories = 2000
	}

	today := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	if got := currentStreak(days, today); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}

	// a gap right before today breaks the streak immediately
	today = time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	if got := currentStreak(days, today); got != 0 {
		t.Errorf("expected streak 0 after a gap, got %d", got)
	}
}

func TestCurrentStreakIgnoresFutureDays(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, false)
	for _, d := range []int{9, 10, 11, 12} {
		days[d-1].Calories = 2000
	}

	// days 11 and 12 are in the future, they are skipped, not counted
	today := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	if got := currentStreak(days, today); got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
}

func TestNutritionBreakdownOrderInvariance(t *testing.T) {
	days := []*stats.DayRecord{
		dayRec(2024, 6, 1, 1500, 2000),
		dayRec(2024, 6, 2, 2200, 2000),
		dayRec(2024, 6, 3, 1800, 2000),
		dayRec(2024, 6, 4, 0, 2000),
	}
	days[0].WaterIntakeMl = 1000
	days[1].WaterIntakeMl = 3000

	forward := nutritionBreakdown(days)

	reversed := make([]*stats.DayRecord, len(days))
	for i, d := range days {
		reversed[len(days)-1-i] = d
	}
	backward := nutritionBreakdown(reversed)

	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("breakdown must not depend on day order:\n%+v\n%+v", forward, backward)
	}

	if forward.Calories.Min != 1500 || forward.Calories.Max != 2200 {
		t.Errorf("expected min/max 1500/2200, got %v/%v", forward.Calories.Min, forward.Calories.Max)
	}
	// 3 data days: (1500+2200+1800)/3
	if forward.Calories.Average != 1833.3 {
		t.Errorf("expected average 1833.3, got %v", forward.Calories.Average)
	}
	if forward.Water.DailyGoal != water.DailyGoalMl {
		t.Errorf("expected fixed water goal %v, got %v", float64(water.DailyGoalMl), forward.Water.DailyGoal)
	}
}

func TestMacroTrendsTooFewDataDays(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, false)
	for d := 1; d <= 6; d++ {
		days[d-1].Calories = float64(500 * d) // strongly increasing
	}

	trends := macroTrends(days)

	if trends.Calories != stats.TrendStable || trends.OverallTrend != stats.TrendStable {
		t.Errorf("fewer than 7 data days must report stable everywhere, got %+v", trends)
	}
}

func TestMacroTrendsIncreasingAndImproving(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, false)
	// first half of the data days well under goal, second half on goal
	for d := 1; d <= 4; d++ {
		days[d-1].Calories = 1000
	}
	for d := 5; d <= 8; d++ {
		days[d-1].Calories = 2000
	}

	trends := macroTrends(days)

	if trends.Calories != stats.TrendIncreasing {
		t.Errorf("expected increasing calories trend, got %s", trends.Calories)
	}
	if trends.OverallTrend != stats.TrendImproving {
		t.Errorf("expected improving overall trend, got %s", trends.OverallTrend)
	}
}

func TestWeeklyBreakdownSkipsEmptyWeeks(t *testing.T) {
	days := bucketizeMonth(nil, nil, nil, nil, 2024, 6, false)
	for d := 1; d <= 7; d++ {
		days[d-1].Calories = 2000 // week 1: on goal every day
	}
	for d := 15; d <= 21; d++ {
		days[d-1].Calories = 1000 // week 3: every day at 50%
	}

	weeks := weeklyBreakdown(days)

	if len(weeks) != 2 {
		t.Fatalf("expected 2 non-empty weeks, got %d", len(weeks))
	}
	if weeks[0].WeekNumber != 1 || weeks[1].WeekNumber != 3 {
		t.Errorf("expected week numbers 1 and 3, got %d and %d", weeks[0].WeekNumber, weeks[1].WeekNumber)
	}

	if weeks[0].AverageProgress != 100 {
		t.Errorf("expected week 1 progress 100, got %v", weeks[0].AverageProgress)
	}
	if weeks[0].GoalDays != 7 {
		t.Errorf("expected 7 goal days in week 1, got %d", weeks[0].GoalDays)
	}
	if len(weeks[0].Highlights) == 0 || weeks[0].Highlights[0] != "Almost perfect week!" {
		t.Errorf("expected almost-perfect highlight, got %v", weeks[0].Highlights)
	}

	if weeks[1].AverageProgress != 50 {
		t.Errorf("expected week 3 progress 50, got %v", weeks[1].AverageProgress)
	}
	wantChallenge := fmt.Sprintf("%d days below 70%% of goal", 7)
	if len(weeks[1].Challenges) == 0 || weeks[1].Challenges[0] != wantChallenge {
		t.Errorf("expected challenge %q, got %v", wantChallenge, weeks[1].Challenges)
	}

	best, worst := pickWeeks(weeks)
	if best.WeekNumber != 1 {
		t.Errorf("expected week 1 as best, got %d", best.WeekNumber)
	}
	if worst.WeekNumber != 3 {
		t.Errorf("expected week 3 as most challenging, got %d", worst.WeekNumber)
	}
}

func TestPickWeeksTieKeepsFirst(t *testing.T) {
	weeks := []*stats.WeekWindow{
		{WeekNumber: 1, AverageProgress: 80},
		{WeekNumber: 2, AverageProgress: 80},
	}

	best, worst := pickWeeks(weeks)
	if best.WeekNumber != 1 || worst.WeekNumber != 1 {
		t.Errorf("ties must keep the first occurrence, got best=%d worst=%d", best.WeekNumber, worst.WeekNumber)
	}
}

func TestCompareMonths(t *testing.T) {
	cur := monthAggregates{avgCalories: 1900, avgWater: 2100, monthlyProgress: 60, streakDays: 5}
	prev := monthAggregates{avgCalories: 1700.5, avgWater: 1800, monthlyProgress: 45, streakDays: 2}

	diff := compareMonths(cur, prev)

	if diff.CaloriesDiff != 199.5 {
		t.Errorf("expected calories diff 199.5, got %v", diff.CaloriesDiff)
	}
	if diff.ProgressDiff != 15 {
		t.Errorf("expected progress diff 15, got %d", diff.ProgressDiff)
	}
	if diff.StreakDiff != 3 {
		t.Errorf("expected streak diff 3, got %d", diff.StreakDiff)
	}
}

func TestMotivationalMessageCascade(t *testing.T) {
	cases := []struct {
		progress, progressDiff, streak int
		want                           string
	}{
		{95, 0, 0, "Outstanding! You hit your goals almost every day this month!"},
		{80, 0, 0, "Great job! You're staying right on track with your nutrition goals."},
		{55, 20, 10, "Good progress! More than half of your days met the goal."},
		{30, 15, 0, "Nice improvement over last month, keep the momentum going!"},
		{30, 5, 4, "4 day streak! Don't break the chain."},
		{10, 0, 0, "Every logged meal counts. Keep going!"},
	}

	for _, c := range cases {
		if got := motivationalMessage(c.progress, c.progressDiff, c.streak); got != c.want {
			t.Errorf("motivationalMessage(%d, %d, %d) = %q, want %q", c.progress, c.progressDiff, c.streak, got, c.want)
		}
	}
}
