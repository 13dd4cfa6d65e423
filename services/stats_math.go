package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"nutriTrackAPI/internal/event"
	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/stats"
	"nutriTrackAPI/internal/water"
	"nutriTrackAPI/utils"
)

// goalMetThreshold is the fraction of the calorie goal a day must reach to
// count as a goal day. perfectDayScore is the quality score bar for a
// perfect day.
const (
	goalMetThreshold = 0.9
	perfectDayScore  = 9
)

const dayKeyLayout = "2006-01-02"

// dayKey truncates a row timestamp to its UTC calendar day. Rows with a
// missing or zero timestamp are dropped from bucketing, the second return
// reports whether the key is usable.
func dayKey(t *time.Time) (string, bool) {
	if t == nil || t.IsZero() {
		return "", false
	}
	return t.UTC().Format(dayKeyLayout), true
}

// monthRange returns the inclusive UTC range [day 1 00:00:00.000,
// last day 23:59:59.999] of the given month.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// previousMonth handles the January rollover to December of year-1.
func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

func daysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}

var mainMealPeriods = map[string]bool{
	"breakfast":  true,
	"lunch":      true,
	"dinner":     true,
	"late_night": true,
}

func goalOrDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// bucketizeMonth folds raw rows into exactly one DayRecord per calendar day
// of the month, contiguous, no gaps. Days without data get zeroed actuals
// and the default goals. The same function serves the current and the
// previous month, withQuality toggles the quality score (the previous
// month's records never need it).
func bucketizeMonth(meals []*meal.Meal, goals []*goal.DailyGoal, waters []*water.Intake, events []*event.Event, year, month int, withQuality bool) []*stats.DayRecord {
	mealsByDay := make(map[string][]*meal.Meal)
	for _, m := range meals {
		key, ok := dayKey(m.UploadTime)
		if !ok {
			log.Printf("stats: dropping meal %s with missing upload time", m.ID)
			continue
		}
		mealsByDay[key] = append(mealsByDay[key], m)
	}

	goalByDay := make(map[string]*goal.DailyGoal)
	for _, g := range goals {
		key, ok := dayKey(g.Date)
		if !ok {
			log.Printf("stats: dropping goal %s with missing date", g.ID)
			continue
		}
		goalByDay[key] = g
	}

	waterByDay := make(map[string]float64)
	for _, w := range waters {
		key, ok := dayKey(w.Date)
		if !ok {
			log.Printf("stats: dropping water row %s with missing date", w.ID)
			continue
		}
		waterByDay[key] = w.AmountMl
	}

	eventsByDay := make(map[string][]*event.Event)
	for _, e := range events {
		key, ok := dayKey(e.Date)
		if !ok {
			log.Printf("stats: dropping event %s with missing date", e.ID)
			continue
		}
		eventsByDay[key] = append(eventsByDay[key], e)
	}

	total := daysInMonth(year, month)
	days := make([]*stats.DayRecord, 0, total)

	for d := 1; d <= total; d++ {
		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
		key := date.Format(dayKeyLayout)

		rec := &stats.DayRecord{
			Date:         date,
			CaloriesGoal: goal.DefaultCalories,
			ProteinGoal:  goal.DefaultProtein,
			CarbsGoal:    goal.DefaultCarbs,
			FatGoal:      goal.DefaultFat,
			Events:       []*stats.DayEvent{},
		}

		if g, ok := goalByDay[key]; ok {
			rec.CaloriesGoal = goalOrDefault(g.Calories, goal.DefaultCalories)
			rec.ProteinGoal = goalOrDefault(g.Protein, goal.DefaultProtein)
			rec.CarbsGoal = goalOrDefault(g.Carbs, goal.DefaultCarbs)
			rec.FatGoal = goalOrDefault(g.Fat, goal.DefaultFat)
		}

		for _, m := range mealsByDay[key] {
			rec.Calories += m.Calories
			rec.Protein += m.Protein
			rec.Carbs += m.Carbs
			rec.Fat += m.Fat
			if mainMealPeriods[strings.ToLower(m.Period)] {
				rec.MealCount++
			}
		}

		rec.WaterIntakeMl = waterByDay[key]

		if withQuality {
			rec.QualityScore = utils.QualityScore(rec.Calories, rec.CaloriesGoal, rec.Protein, rec.ProteinGoal, rec.WaterIntakeMl)
		}

		for _, e := range eventsByDay[key] {
			createdAt := time.Now().UTC()
			if e.CreatedAt != nil && !e.CreatedAt.IsZero() {
				createdAt = *e.CreatedAt
			}
			rec.Events = append(rec.Events, &stats.DayEvent{
				ID:          e.ID.String(),
				Title:       e.Title,
				Type:        e.EventType,
				CreatedAt:   createdAt,
				Description: e.Description,
			})
		}

		days = append(days, rec)
	}

	return days
}

func metCalorieGoal(d *stats.DayRecord) bool {
	return d.CaloriesGoal > 0 && d.Calories >= goalMetThreshold*d.CaloriesGoal
}

func daysWithData(days []*stats.DayRecord) []*stats.DayRecord {
	var out []*stats.DayRecord
	for _, d := range days {
		if d.Calories > 0 {
			out = append(out, d)
		}
	}
	return out
}

// monthAggregates is the scalar summary shared by the current month and the
// reduced previous-month pass used for comparison.
type monthAggregates struct {
	totalDays       int
	daysWithData    int
	goalDays        int
	perfectDays     int
	monthlyProgress int
	streakDays      int
	avgCalories     float64
	avgProtein      float64
	avgCarbs        float64
	avgFat          float64
	avgWater        float64
	avgQuality      float64
	avgMealCount    float64
}

func computeAggregates(days []*stats.DayRecord, today time.Time) monthAggregates {
	agg := monthAggregates{totalDays: len(days)}

	dwd := daysWithData(days)
	agg.daysWithData = len(dwd)

	for _, d := range days {
		if metCalorieGoal(d) {
			agg.goalDays++
		}
		if d.QualityScore >= perfectDayScore {
			agg.perfectDays++
		}
	}

	if agg.totalDays > 0 {
		agg.monthlyProgress = roundPercent(100 * float64(agg.goalDays) / float64(agg.totalDays))
	}

	agg.streakDays = currentStreak(days, today)

	if len(dwd) > 0 {
		var cal, pro, carb, fat, wat, q, mc float64
		for _, d := range dwd {
			cal += d.Calories
			pro += d.Protein
			carb += d.Carbs
			fat += d.Fat
			wat += d.WaterIntakeMl
			q += d.QualityScore
			mc += float64(d.MealCount)
		}
		n := float64(len(dwd))
		agg.avgCalories = round1(cal / n)
		agg.avgProtein = round1(pro / n)
		agg.avgCarbs = round1(carb / n)
		agg.avgFat = round1(fat / n)
		agg.avgWater = round1(wat / n)
		agg.avgQuality = round1(q / n)
		agg.avgMealCount = round1(mc / n)
	}

	return agg
}

// currentStreak walks backward from today over the month's days and counts
// consecutive days that logged food and met the calorie goal. Future days
// never count and never break the walk.
func currentStreak(days []*stats.DayRecord, today time.Time) int {
	sorted := make([]*stats.DayRecord, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	t := today.UTC()
	todayDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for _, d := range sorted {
		if d.Date.After(todayDay) {
			continue
		}
		if d.Calories > 0 && metCalorieGoal(d) {
			streak++
		} else {
			break
		}
	}
	return streak
}

func macroStatsFor(values, goals []float64) stats.MacroStats {
	if len(values) == 0 {
		return stats.MacroStats{}
	}

	var sum, gsum float64
	minVal := values[0]
	maxVal := values[0]
	for i, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		gsum += goals[i]
	}

	n := float64(len(values))
	ms := stats.MacroStats{
		Average:     round1(sum / n),
		Min:         math.Max(minVal, 0),
		Max:         math.Max(maxVal, 0),
		Total:       round1(sum),
		GoalAverage: round1(gsum / n),
	}
	if ms.GoalAverage > 0 {
		ms.AdherencePercent = roundPercent(100 * ms.Average / ms.GoalAverage)
	}
	return ms
}

// nutritionBreakdown summarizes each macro and water over the days that
// actually have data. It is a pure function of those days, order does not
// matter.
func nutritionBreakdown(days []*stats.DayRecord) stats.NutritionBreakdown {
	dwd := daysWithData(days)

	var cal, calG, pro, proG, carb, carbG, fat, fatG, wat, watG []float64
	for _, d := range dwd {
		cal = append(cal, d.Calories)
		calG = append(calG, d.CaloriesGoal)
		pro = append(pro, d.Protein)
		proG = append(proG, d.ProteinGoal)
		carb = append(carb, d.Carbs)
		carbG = append(carbG, d.CarbsGoal)
		fat = append(fat, d.Fat)
		fatG = append(fatG, d.FatGoal)
		wat = append(wat, d.WaterIntakeMl)
		watG = append(watG, water.DailyGoalMl)
	}

	return stats.NutritionBreakdown{
		Calories: macroStatsFor(cal, calG),
		Protein:  macroStatsFor(pro, proG),
		Carbs:    macroStatsFor(carb, carbG),
		Fat:      macroStatsFor(fat, fatG),
		Water: stats.WaterStats{
			MacroStats: macroStatsFor(wat, watG),
			DailyGoal:  water.DailyGoalMl,
		},
	}
}

func meanOf(days []*stats.DayRecord, sel func(*stats.DayRecord) float64) float64 {
	if len(days) == 0 {
		return 0
	}
	var sum float64
	for _, d := range days {
		sum += sel(d)
	}
	return sum / float64(len(days))
}

func classifyTrend(firstMean, secondMean float64) string {
	diff := secondMean - firstMean
	band := 0.1 * firstMean
	switch {
	case diff > band:
		return stats.TrendIncreasing
	case diff < -band:
		return stats.TrendDecreasing
	default:
		return stats.TrendStable
	}
}

// macroTrends compares the first and second half of the days that have
// data. Fewer than 7 data days is too little signal, everything reports
// stable.
func macroTrends(days []*stats.DayRecord) stats.MacroTrends {
	dwd := daysWithData(days)
	if len(dwd) < 7 {
		return stats.MacroTrends{
			Calories:     stats.TrendStable,
			Protein:      stats.TrendStable,
			Carbs:        stats.TrendStable,
			Fat:          stats.TrendStable,
			Water:        stats.TrendStable,
			OverallTrend: stats.TrendStable,
		}
	}

	mid := len(dwd) / 2
	first, second := dwd[:mid], dwd[mid:]

	trends := stats.MacroTrends{
		Calories: classifyTrend(meanOf(first, func(d *stats.DayRecord) float64 { return d.Calories }), meanOf(second, func(d *stats.DayRecord) float64 { return d.Calories })),
		Protein:  classifyTrend(meanOf(first, func(d *stats.DayRecord) float64 { return d.Protein }), meanOf(second, func(d *stats.DayRecord) float64 { return d.Protein })),
		Carbs:    classifyTrend(meanOf(first, func(d *stats.DayRecord) float64 { return d.Carbs }), meanOf(second, func(d *stats.DayRecord) float64 { return d.Carbs })),
		Fat:      classifyTrend(meanOf(first, func(d *stats.DayRecord) float64 { return d.Fat }), meanOf(second, func(d *stats.DayRecord) float64 { return d.Fat })),
		Water:    classifyTrend(meanOf(first, func(d *stats.DayRecord) float64 { return d.WaterIntakeMl }), meanOf(second, func(d *stats.DayRecord) float64 { return d.WaterIntakeMl })),
	}

	firstRate := goalRate(first)
	secondRate := goalRate(second)
	switch {
	case secondRate > 1.1*firstRate:
		trends.OverallTrend = stats.TrendImproving
	case secondRate < 0.9*firstRate:
		trends.OverallTrend = stats.TrendDeclining
	default:
		trends.OverallTrend = stats.TrendStable
	}

	return trends
}

func goalRate(days []*stats.DayRecord) float64 {
	if len(days) == 0 {
		return 0
	}
	met := 0
	for _, d := range days {
		if metCalorieGoal(d) {
			met++
		}
	}
	return float64(met) / float64(len(days))
}

// weeklyBreakdown partitions the full day sequence into consecutive 7-day
// windows (the last may be shorter). Windows with no logged food at all are
// skipped entirely.
func weeklyBreakdown(days []*stats.DayRecord) []*stats.WeekWindow {
	var weeks []*stats.WeekWindow

	for start := 0; start < len(days); start += 7 {
		end := start + 7
		if end > len(days) {
			end = len(days)
		}
		window := days[start:end]

		hasData := false
		for _, d := range window {
			if d.Calories > 0 {
				hasData = true
				break
			}
		}
		if !hasData {
			continue
		}

		w := &stats.WeekWindow{
			WeekNumber: start/7 + 1,
			StartDate:  window[0].Date,
			EndDate:    window[len(window)-1].Date,
			Highlights: []string{},
			Challenges: []string{},
		}

		var progressSum float64
		lowDays := 0
		overDays := 0
		for _, d := range window {
			if metCalorieGoal(d) {
				w.GoalDays++
			}
			if d.QualityScore >= perfectDayScore {
				w.PerfectDays++
			}
			if d.CaloriesGoal > 0 {
				ratio := d.Calories / d.CaloriesGoal
				progressSum += math.Min(ratio*100, 100)
				if ratio < 0.7 {
					lowDays++
				}
				if ratio > 1.1 {
					overDays++
				}
			}
		}
		w.AverageProgress = round1(progressSum / float64(len(window)))

		wd := daysWithData(window)
		w.AvgCalories = round1(meanOf(wd, func(d *stats.DayRecord) float64 { return d.Calories }))
		w.AvgProtein = round1(meanOf(wd, func(d *stats.DayRecord) float64 { return d.Protein }))
		w.AvgCarbs = round1(meanOf(wd, func(d *stats.DayRecord) float64 { return d.Carbs }))
		w.AvgFat = round1(meanOf(wd, func(d *stats.DayRecord) float64 { return d.Fat }))

		if w.GoalDays >= 6 {
			w.Highlights = append(w.Highlights, "Almost perfect week!")
		}
		if w.GoalDays >= 4 {
			w.Highlights = append(w.Highlights, fmt.Sprintf("%d days of goal achievement", w.GoalDays))
		}
		if w.PerfectDays >= 3 {
			w.Highlights = append(w.Highlights, fmt.Sprintf("%d perfect days", w.PerfectDays))
		}
		if lowDays >= 2 {
			w.Challenges = append(w.Challenges, fmt.Sprintf("%d days below 70%% of goal", lowDays))
		}
		if overDays >= 2 {
			w.Challenges = append(w.Challenges, fmt.Sprintf("%d days of overeating", overDays))
		}

		weeks = append(weeks, w)
	}

	return weeks
}

// pickWeeks selects the best and most challenging week by average progress.
// Strict comparisons keep the first occurrence on ties.
func pickWeeks(weeks []*stats.WeekWindow) (best, worst *stats.WeekWindow) {
	for _, w := range weeks {
		if best == nil || w.AverageProgress > best.AverageProgress {
			best = w
		}
		if worst == nil || w.AverageProgress < worst.AverageProgress {
			worst = w
		}
	}
	return best, worst
}

func compareMonths(cur, prev monthAggregates) stats.MonthComparison {
	return stats.MonthComparison{
		CaloriesDiff: round1(cur.avgCalories - prev.avgCalories),
		ProteinDiff:  round1(cur.avgProtein - prev.avgProtein),
		CarbsDiff:    round1(cur.avgCarbs - prev.avgCarbs),
		FatDiff:      round1(cur.avgFat - prev.avgFat),
		WaterDiff:    round1(cur.avgWater - prev.avgWater),
		ProgressDiff: cur.monthlyProgress - prev.monthlyProgress,
		StreakDiff:   cur.streakDays - prev.streakDays,
	}
}

// motivationalMessage is a priority cascade, first match wins.
func motivationalMessage(progress, progressDiff, streakDays int) string {
	switch {
	case progress >= 90:
		return "Outstanding! You hit your goals almost every day this month!"
	case progress >= 75:
		return "Great job! You're staying right on track with your nutrition goals."
	case progress >= 50:
		return "Good progress! More than half of your days met the goal."
	case progressDiff > 10:
		return "Nice improvement over last month, keep the momentum going!"
	case streakDays >= 3:
		return fmt.Sprintf("%d day streak! Don't break the chain.", streakDays)
	default:
		return "Every logged meal counts. Keep going!"
	}
}
