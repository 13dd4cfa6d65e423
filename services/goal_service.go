package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/goal"
)

type GoalService struct {
	db *pgxpool.Pool
}

func NewGoalService(db *pgxpool.Pool) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) UpsertDailyGoal(ctx context.Context, clerkID string, req *goal.UpsertGoalRequest) (*goal.DailyGoal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	d := req.Date.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	query := `
	INSERT INTO daily_goals (id, user_id, date, calories, protein, carbs, fat)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, date)
	DO UPDATE SET
		calories = EXCLUDED.calories,
		protein = EXCLUDED.protein,
		carbs = EXCLUDED.carbs,
		fat = EXCLUDED.fat
	RETURNING id, user_id, date, calories, protein, carbs, fat
	`

	g := &goal.DailyGoal{}
	err = s.db.QueryRow(ctx, query,
		uuid.New(), userID, day, req.Calories, req.Protein, req.Carbs, req.Fat,
	).Scan(&g.ID, &g.UserID, &g.Date, &g.Calories, &g.Protein, &g.Carbs, &g.Fat)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily goal: %w", err)
	}

	return g, nil
}

// GetDailyGoal returns the stored goal for a day, falling back to the
// default goal set when none was configured.
func (s *GoalService) GetDailyGoal(ctx context.Context, clerkID string, date time.Time) (*goal.DailyGoal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	d := date.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	query := `
	SELECT id, user_id, date, calories, protein, carbs, fat
	FROM daily_goals
	WHERE user_id = $1 AND date = $2
	`

	g := &goal.DailyGoal{}
	err = s.db.QueryRow(ctx, query, userID, day).Scan(&g.ID, &g.UserID, &g.Date, &g.Calories, &g.Protein, &g.Carbs, &g.Fat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &goal.DailyGoal{
				UserID:   userID,
				Date:     &day,
				Calories: goal.DefaultCalories,
				Protein:  goal.DefaultProtein,
				Carbs:    goal.DefaultCarbs,
				Fat:      goal.DefaultFat,
			}, nil
		}
		return nil, fmt.Errorf("failed to get daily goal: %w", err)
	}

	return g, nil
}
