package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/water"
	"nutriTrackAPI/utils"
)

type WaterService struct {
	db       *pgxpool.Pool
	notifier utils.NotificationCreator
}

func NewWaterService(db *pgxpool.Pool, notifier utils.NotificationCreator) *WaterService {
	return &WaterService{db: db, notifier: notifier}
}

// LogWater accumulates an intake amount onto the day's row. Crossing the
// daily hydration goal fires a fire-and-forget push.
func (s *WaterService) LogWater(ctx context.Context, clerkID string, req *water.LogWaterRequest) (*water.Intake, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if req.AmountMl <= 0 {
		return nil, fmt.Errorf("amount_ml must be positive")
	}

	d := time.Now().UTC()
	if req.Date != nil && !req.Date.IsZero() {
		d = req.Date.UTC()
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	query := `
	INSERT INTO water_intake (id, user_id, date, amount_ml)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, date)
	DO UPDATE SET amount_ml = water_intake.amount_ml + EXCLUDED.amount_ml
	RETURNING id, user_id, date, amount_ml
	`

	w := &water.Intake{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, day, req.AmountMl).Scan(&w.ID, &w.UserID, &w.Date, &w.AmountMl)
	if err != nil {
		return nil, fmt.Errorf("failed to log water intake: %w", err)
	}

	if s.notifier != nil && w.AmountMl >= water.DailyGoalMl && w.AmountMl-req.AmountMl < water.DailyGoalMl {
		go utils.HydrationGoalReached(s.notifier, userID, w.AmountMl)
	}

	return w, nil
}

func (s *WaterService) GetWaterByDate(ctx context.Context, clerkID string, date time.Time) (*water.Intake, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	d := date.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	w := &water.Intake{}
	err = s.db.QueryRow(ctx,
		`SELECT id, user_id, date, amount_ml FROM water_intake WHERE user_id = $1 AND date = $2`,
		userID, day,
	).Scan(&w.ID, &w.UserID, &w.Date, &w.AmountMl)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &water.Intake{UserID: userID, Date: &day, AmountMl: 0}, nil
		}
		return nil, fmt.Errorf("failed to get water intake: %w", err)
	}

	return w, nil
}
