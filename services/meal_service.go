package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/meal"
)

type MealService struct {
	db *pgxpool.Pool
}

func NewMealService(db *pgxpool.Pool) *MealService {
	return &MealService{db: db}
}

var validPeriods = map[string]bool{
	string(meal.PeriodBreakfast): true,
	string(meal.PeriodLunch):     true,
	string(meal.PeriodDinner):    true,
	string(meal.PeriodLateNight): true,
	string(meal.PeriodSnack):     true,
}

func (s *MealService) AddMeal(ctx context.Context, clerkID string, req *meal.AddMealRequest) (*meal.Meal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	period := strings.ToLower(strings.TrimSpace(req.Period))
	if !validPeriods[period] {
		return nil, fmt.Errorf("invalid meal period: %s", req.Period)
	}

	uploadTime := time.Now().UTC()
	if req.UploadTime != nil && !req.UploadTime.IsZero() {
		uploadTime = req.UploadTime.UTC()
	}

	query := `
	INSERT INTO meals (id, user_id, name, period, calories, protein, carbs, fat, upload_time, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	RETURNING id, user_id, name, period, calories, protein, carbs, fat, upload_time, created_at
	`

	m := &meal.Meal{}
	err = s.db.QueryRow(ctx, query,
		uuid.New(), userID, req.Name, period, req.Calories, req.Protein, req.Carbs, req.Fat, uploadTime,
	).Scan(&m.ID, &m.UserID, &m.Name, &m.Period, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.UploadTime, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add meal: %w", err)
	}

	return m, nil
}

func (s *MealService) GetMealsByDate(ctx context.Context, clerkID string, date time.Time) ([]*meal.Meal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	d := date.UTC()
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1).Add(-time.Millisecond)

	query := `
	SELECT id, user_id, name, period, calories, protein, carbs, fat, upload_time, created_at
	FROM meals
	WHERE user_id = $1
		AND upload_time >= $2
		AND upload_time <= $3
	ORDER BY upload_time
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	defer rows.Close()

	meals := []*meal.Meal{}
	for rows.Next() {
		m := &meal.Meal{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Period, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.UploadTime, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}

	return meals, rows.Err()
}

func (s *MealService) DeleteMeal(ctx context.Context, clerkID string, mealID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	mealUUID, err := uuid.Parse(mealID)
	if err != nil {
		return fmt.Errorf("invalid meal ID: %w", err)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, mealUUID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal not found")
	}

	return nil
}
