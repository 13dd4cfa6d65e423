package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/event"
)

type EventService struct {
	db *pgxpool.Pool
}

func NewEventService(db *pgxpool.Pool) *EventService {
	return &EventService{db: db}
}

func (s *EventService) CreateEvent(ctx context.Context, clerkID string, req *event.CreateEventRequest) (*event.Event, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	d := req.Date.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	query := `
	INSERT INTO calendar_events (id, user_id, title, event_type, date, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	RETURNING id, user_id, title, event_type, date, description, created_at
	`

	e := &event.Event{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, req.Title, req.EventType, day, req.Description).
		Scan(&e.ID, &e.UserID, &e.Title, &e.EventType, &e.Date, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return e, nil
}

func (s *EventService) GetEventsForMonth(ctx context.Context, clerkID string, year, month int) ([]*event.Event, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	from, to := monthRange(year, month)

	query := `
	SELECT id, user_id, title, event_type, date, description, created_at
	FROM calendar_events
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date, created_at
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer rows.Close()

	events := []*event.Event{}
	for rows.Next() {
		e := &event.Event{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.EventType, &e.Date, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *EventService) DeleteEvent(ctx context.Context, clerkID string, eventID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`, eventUUID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}

	return nil
}
