package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/badge"
	"nutriTrackAPI/internal/dashboard"
	"nutriTrackAPI/internal/event"
	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/stats"
	"nutriTrackAPI/internal/water"
)

// ErrAggregationFailed signals total failure of a stats aggregation. The
// aggregator otherwise degrades per query branch and always produces a
// complete result.
var ErrAggregationFailed = errors.New("monthly stats aggregation failed")

const (
	badgeWindowDays = 30
	badgeLimit      = 10
)

type StatsService struct {
	repo StatsRepository

	// now is swappable so streak anchoring is deterministic in tests.
	now func() time.Time
}

func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{
		repo: repo,
		now:  time.Now,
	}
}

// monthData holds one result slot per fetch branch. Each branch writes only
// its own slot, a failed branch leaves the zero value.
type monthData struct {
	meals       []*meal.Meal
	prevMeals   []*meal.Meal
	goals       []*goal.DailyGoal
	prevGoals   []*goal.DailyGoal
	water       []*water.Intake
	prevWater   []*water.Intake
	events      []*event.Event
	badges      []*badge.Badge
	totalPoints int
}

// fetchMonthData fans out the independent reads for the current and the
// previous month. A failing branch logs and degrades to empty data so that
// partial storage trouble never prevents a response.
func (s *StatsService) fetchMonthData(ctx context.Context, userID uuid.UUID, curFrom, curTo, prevFrom, prevTo time.Time) *monthData {
	d := &monthData{}

	var wg sync.WaitGroup
	run := func(name string, f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				log.Printf("stats: %s query failed, continuing with empty data: %v", name, err)
			}
		}()
	}

	run("meals", func() error {
		rows, err := s.repo.MealsInRange(ctx, userID, curFrom, curTo)
		if err != nil {
			return err
		}
		d.meals = rows
		return nil
	})
	run("previous meals", func() error {
		rows, err := s.repo.MealsInRange(ctx, userID, prevFrom, prevTo)
		if err != nil {
			return err
		}
		d.prevMeals = rows
		return nil
	})
	run("goals", func() error {
		rows, err := s.repo.GoalsInRange(ctx, userID, curFrom, curTo)
		if err != nil {
			return err
		}
		d.goals = rows
		return nil
	})
	run("previous goals", func() error {
		rows, err := s.repo.GoalsInRange(ctx, userID, prevFrom, prevTo)
		if err != nil {
			return err
		}
		d.prevGoals = rows
		return nil
	})
	run("water", func() error {
		rows, err := s.repo.WaterInRange(ctx, userID, curFrom, curTo)
		if err != nil {
			return err
		}
		d.water = rows
		return nil
	})
	run("previous water", func() error {
		rows, err := s.repo.WaterInRange(ctx, userID, prevFrom, prevTo)
		if err != nil {
			return err
		}
		d.prevWater = rows
		return nil
	})
	run("events", func() error {
		rows, err := s.repo.EventsInRange(ctx, userID, curFrom, curTo)
		if err != nil {
			return err
		}
		d.events = rows
		return nil
	})
	run("badges", func() error {
		since := s.now().UTC().AddDate(0, 0, -badgeWindowDays)
		rows, err := s.repo.RecentBadges(ctx, userID, since, badgeLimit)
		if err != nil {
			return err
		}
		d.badges = rows
		return nil
	})
	run("total points", func() error {
		points, err := s.repo.TotalPoints(ctx, userID)
		if err != nil {
			return err
		}
		d.totalPoints = points
		return nil
	})

	wg.Wait()
	return d
}

// GetMonthlyStats aggregates one (user, year, month) into the full monthly
// statistics payload: daily buckets, scalar aggregates, nutrition
// breakdown, trends, weekly windows and the previous-month comparison.
func (s *StatsService) GetMonthlyStats(ctx context.Context, clerkID string, year, month int) (*stats.MonthlyStats, error) {
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: invalid period %d-%02d", ErrAggregationFailed, year, month)
	}

	userID, err := s.repo.UserIDByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	curFrom, curTo := monthRange(year, month)
	prevYear, prevMonth := previousMonth(year, month)
	prevFrom, prevTo := monthRange(prevYear, prevMonth)

	d := s.fetchMonthData(ctx, userID, curFrom, curTo, prevFrom, prevTo)

	curDays := bucketizeMonth(d.meals, d.goals, d.water, d.events, year, month, true)
	prevDays := bucketizeMonth(d.prevMeals, d.prevGoals, d.prevWater, nil, prevYear, prevMonth, false)

	today := s.now()
	cur := computeAggregates(curDays, today)
	prev := computeAggregates(prevDays, today)

	weeks := weeklyBreakdown(curDays)
	best, worst := pickWeeks(weeks)

	result := &stats.MonthlyStats{
		Year:                year,
		Month:               month,
		MonthlyProgress:     cur.monthlyProgress,
		StreakDays:          cur.streakDays,
		TotalGoalDays:       cur.goalDays,
		TotalDays:           cur.totalDays,
		PerfectDays:         cur.perfectDays,
		AverageCalories:     cur.avgCalories,
		AverageProtein:      cur.avgProtein,
		AverageCarbs:        cur.avgCarbs,
		AverageFat:          cur.avgFat,
		AverageWater:        cur.avgWater,
		AverageQualityScore: cur.avgQuality,
		AverageMealCount:    cur.avgMealCount,
		DailyData:           curDays,
		NutritionBreakdown:  nutritionBreakdown(curDays),
		MacroTrends:         macroTrends(curDays),
		BestWeek:            "No data available",
		ChallengingWeek:     "No data available",
		WeeklyBreakdown:     weeks,
		Badges:              d.badges,
		TotalPoints:         d.totalPoints,
		Comparison:          compareMonths(cur, prev),
	}

	if best != nil {
		result.BestWeek = fmt.Sprintf("Week %d", best.WeekNumber)
		result.BestWeekDetail = best
	}
	if worst != nil {
		result.ChallengingWeek = fmt.Sprintf("Week %d", worst.WeekNumber)
		result.ChallengingWeekDetail = worst
	}
	if result.Badges == nil {
		result.Badges = []*badge.Badge{}
	}

	result.Message = motivationalMessage(cur.monthlyProgress, result.Comparison.ProgressDiff, cur.streakDays)

	return result, nil
}

// GetDashboard assembles the "today" summary the home screen shows.
func (s *StatsService) GetDashboard(ctx context.Context, clerkID string) (*dashboard.Summary, error) {
	userID, err := s.repo.UserIDByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	t := s.now().UTC()
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)

	meals, err := s.repo.MealsInRange(ctx, userID, from, to)
	if err != nil {
		log.Printf("dashboard: meals query failed, continuing with empty data: %v", err)
	}
	goals, err := s.repo.GoalsInRange(ctx, userID, from, to)
	if err != nil {
		log.Printf("dashboard: goals query failed, continuing with empty data: %v", err)
	}
	intakes, err := s.repo.WaterInRange(ctx, userID, from, to)
	if err != nil {
		log.Printf("dashboard: water query failed, continuing with empty data: %v", err)
	}

	days := bucketizeMonth(meals, goals, intakes, nil, t.Year(), int(t.Month()), true)
	rec := days[t.Day()-1]

	summary := &dashboard.Summary{
		Date:          rec.Date,
		Calories:      rec.Calories,
		CaloriesGoal:  rec.CaloriesGoal,
		Protein:       rec.Protein,
		ProteinGoal:   rec.ProteinGoal,
		Carbs:         rec.Carbs,
		CarbsGoal:     rec.CarbsGoal,
		Fat:           rec.Fat,
		FatGoal:       rec.FatGoal,
		WaterIntakeMl: rec.WaterIntakeMl,
		WaterGoalMl:   water.DailyGoalMl,
		MealCount:     rec.MealCount,
		QualityScore:  rec.QualityScore,
	}
	if rec.CaloriesGoal > 0 {
		summary.CalorieProgress = roundPercent(100 * rec.Calories / rec.CaloriesGoal)
	}
	return summary, nil
}
