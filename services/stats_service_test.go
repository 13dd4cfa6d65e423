package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/badge"
	"nutriTrackAPI/internal/event"
	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/water"
)

type fakeStatsRepo struct {
	userID uuid.UUID

	meals  []*meal.Meal
	goals  []*goal.DailyGoal
	water  []*water.Intake
	events []*event.Event
	badges []*badge.Badge
	points int

	userErr   error
	mealsErr  error
	pointsErr error
}

func (f *fakeStatsRepo) UserIDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	if f.userErr != nil {
		return uuid.Nil, f.userErr
	}
	return f.userID, nil
}

func (f *fakeStatsRepo) MealsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*meal.Meal, error) {
	if f.mealsErr != nil {
		return nil, f.mealsErr
	}
	var out []*meal.Meal
	for _, m := range f.meals {
		if m.UploadTime != nil && !m.UploadTime.Before(from) && !m.UploadTime.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStatsRepo) GoalsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*goal.DailyGoal, error) {
	return f.goals, nil
}

func (f *fakeStatsRepo) WaterInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*water.Intake, error) {
	return f.water, nil
}

func (f *fakeStatsRepo) EventsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*event.Event, error) {
	return f.events, nil
}

func (f *fakeStatsRepo) RecentBadges(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*badge.Badge, error) {
	return f.badges, nil
}

func (f *fakeStatsRepo) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	if f.pointsErr != nil {
		return 0, f.pointsErr
	}
	return f.points, nil
}

func newTestStatsService(repo *fakeStatsRepo, now time.Time) *StatsService {
	svc := NewStatsService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetMonthlyStatsInvalidPeriod(t *testing.T) {
	svc := newTestStatsService(&fakeStatsRepo{userID: uuid.New()}, time.Now())

	cases := []struct {
		year, month int
	}{
		{2024, 0},
		{2024, 13},
		{1969, 6},
		{10000, 6},
	}
	for _, c := range cases {
		_, err := svc.GetMonthlyStats(context.Background(), "clerk_1", c.year, c.month)
		if !errors.Is(err, ErrAggregationFailed) {
			t.Errorf("period %d-%d: expected ErrAggregationFailed, got %v", c.year, c.month, err)
		}
	}
}

func TestGetMonthlyStatsUnknownUser(t *testing.T) {
	repo := &fakeStatsRepo{userErr: errors.New("no rows")}
	svc := newTestStatsService(repo, time.Now())

	_, err := svc.GetMonthlyStats(context.Background(), "clerk_missing", 2024, 6)
	if err == nil {
		t.Fatal("expected an error for an unknown user")
	}
}

func TestGetMonthlyStatsHappyPath(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{
		userID: uuid.New(),
		meals: []*meal.Meal{
			mealRow(ts(2024, 6, 14), "breakfast", 600, 40, 70, 20),
			mealRow(ts(2024, 6, 14), "dinner", 1400, 110, 150, 45),
			mealRow(ts(2024, 6, 15), "lunch", 2000, 150, 220, 60),
		},
		water: []*water.Intake{
			{ID: uuid.New(), Date: ts(2024, 6, 14), AmountMl: 2000},
		},
		badges: []*badge.Badge{
			{ID: uuid.New(), Name: "Hydration Hero", Points: 50},
		},
		points: 120,
	}
	svc := newTestStatsService(repo, now)

	result, err := svc.GetMonthlyStats(context.Background(), "clerk_1", 2024, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Year != 2024 || result.Month != 6 {
		t.Errorf("expected period 2024-6, got %d-%d", result.Year, result.Month)
	}
	if result.TotalDays != 30 {
		t.Errorf("expected 30 total days, got %d", result.TotalDays)
	}
	if len(result.DailyData) != 30 {
		t.Fatalf("expected 30 daily records, got %d", len(result.DailyData))
	}
	if result.TotalGoalDays != 2 {
		t.Errorf("expected 2 goal days, got %d", result.TotalGoalDays)
	}
	// June 14 and 15 both met the goal and today is the 15th
	if result.StreakDays != 2 {
		t.Errorf("expected streak 2, got %d", result.StreakDays)
	}
	if result.TotalPoints != 120 {
		t.Errorf("expected 120 points, got %d", result.TotalPoints)
	}
	if len(result.Badges) != 1 {
		t.Errorf("expected 1 badge, got %d", len(result.Badges))
	}
	if result.BestWeek == "No data available" {
		t.Error("expected a best week label when data exists")
	}
	if result.Message == "" {
		t.Error("expected a motivational message")
	}
}

func TestGetMonthlyStatsDegradesOnBranchFailure(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{
		userID:    uuid.New(),
		mealsErr:  errors.New("connection reset"),
		pointsErr: errors.New("connection reset"),
		badges:    nil,
	}
	svc := newTestStatsService(repo, now)

	result, err := svc.GetMonthlyStats(context.Background(), "clerk_1", 2024, 6)
	if err != nil {
		t.Fatalf("partial storage failure must still produce a result, got error: %v", err)
	}

	if result.TotalDays != 30 || len(result.DailyData) != 30 {
		t.Errorf("expected a complete day grid despite failures, got %d days", len(result.DailyData))
	}
	if result.TotalPoints != 0 {
		t.Errorf("expected points to degrade to 0, got %d", result.TotalPoints)
	}
	if result.Badges == nil {
		t.Error("badges must be an empty slice, not nil")
	}
	if result.BestWeek != "No data available" {
		t.Errorf("expected no-data label for best week, got %q", result.BestWeek)
	}
	if result.AverageCalories != 0 {
		t.Errorf("expected zero average calories, got %v", result.AverageCalories)
	}
}

func TestGetDashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{
		userID: uuid.New(),
		meals: []*meal.Meal{
			mealRow(ts(2024, 6, 15), "breakfast", 500, 35, 50, 18),
			mealRow(ts(2024, 6, 15), "lunch", 700, 45, 80, 22),
		},
		water: []*water.Intake{
			{ID: uuid.New(), Date: ts(2024, 6, 15), AmountMl: 1500},
		},
	}
	svc := newTestStatsService(repo, now)

	summary, err := svc.GetDashboard(context.Background(), "clerk_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Calories != 1200 {
		t.Errorf("expected 1200 calories today, got %v", summary.Calories)
	}
	if summary.MealCount != 2 {
		t.Errorf("expected 2 meals, got %d", summary.MealCount)
	}
	if summary.WaterIntakeMl != 1500 {
		t.Errorf("expected 1500ml water, got %v", summary.WaterIntakeMl)
	}
	if summary.CalorieProgress != 60 {
		t.Errorf("expected 60%% calorie progress, got %d", summary.CalorieProgress)
	}
	if summary.QualityScore == 0 {
		t.Error("expected a non-zero quality score for a day with food")
	}
}
