package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/badge"
	"nutriTrackAPI/internal/event"
	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/water"
)

// StatsRepository is the storage access the aggregator depends on. The
// aggregation pipeline never touches a concrete client, tests substitute an
// in-memory fake.
type StatsRepository interface {
	UserIDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error)
	MealsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*meal.Meal, error)
	GoalsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*goal.DailyGoal, error)
	WaterInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*water.Intake, error)
	EventsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*event.Event, error)
	RecentBadges(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*badge.Badge, error)
	TotalPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresStatsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStatsRepository(db *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) UserIDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("user not found")
		}
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userID, nil
}

func (r *PostgresStatsRepository) MealsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*meal.Meal, error) {
	query := `
	SELECT id, user_id, name, period, calories, protein, carbs, fat, upload_time, created_at
	FROM meals
	WHERE user_id = $1
		AND upload_time >= $2
		AND upload_time <= $3
	ORDER BY upload_time
	`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	defer rows.Close()

	var meals []*meal.Meal
	for rows.Next() {
		m := &meal.Meal{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Period, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.UploadTime, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *PostgresStatsRepository) GoalsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*goal.DailyGoal, error) {
	query := `
	SELECT id, user_id, date, calories, protein, carbs, fat
	FROM daily_goals
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.DailyGoal
	for rows.Next() {
		g := &goal.DailyGoal{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.Date, &g.Calories, &g.Protein, &g.Carbs, &g.Fat); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *PostgresStatsRepository) WaterInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*water.Intake, error) {
	query := `
	SELECT id, user_id, date, amount_ml
	FROM water_intake
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch water intake: %w", err)
	}
	defer rows.Close()

	var intakes []*water.Intake
	for rows.Next() {
		w := &water.Intake{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.AmountMl); err != nil {
			return nil, fmt.Errorf("failed to scan water intake: %w", err)
		}
		intakes = append(intakes, w)
	}
	return intakes, rows.Err()
}

func (r *PostgresStatsRepository) EventsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*event.Event, error) {
	query := `
	SELECT id, user_id, title, event_type, date, description, created_at
	FROM calendar_events
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date, created_at
	`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		e := &event.Event{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.EventType, &e.Date, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PostgresStatsRepository) RecentBadges(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*badge.Badge, error) {
	query := `
	SELECT b.id, b.name, b.description, b.icon, b.points, ub.achieved_at
	FROM user_badges ub
	JOIN badges b ON b.id = ub.badge_id
	WHERE ub.user_id = $1
		AND ub.achieved_at >= $2
	ORDER BY ub.achieved_at DESC
	LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badges: %w", err)
	}
	defer rows.Close()

	var badges []*badge.Badge
	for rows.Next() {
		b := &badge.Badge{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Points, &b.AchievedAt); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (r *PostgresStatsRepository) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var points int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(total_points, 0) FROM users WHERE id = $1`, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user not found")
		}
		return 0, fmt.Errorf("failed to get total points: %w", err)
	}
	return points, nil
}
