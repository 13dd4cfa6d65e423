package workers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/notification"
	"nutriTrackAPI/utils"
)

// reminderHourUTC is when the daily streak check runs.
const reminderHourUTC = 18

// StartStreakReminderWorker starts a background routine that once a day
// nudges users who logged meals yesterday but nothing today.
func StartStreakReminderWorker(db *pgxpool.Pool, notifier utils.NotificationCreator) {
	ticker := time.NewTicker(1 * time.Hour)

	go func() {
		var lastRun string
		for range ticker.C {
			now := time.Now().UTC()
			day := now.Format("2006-01-02")
			if now.Hour() != reminderHourUTC || day == lastRun {
				continue
			}
			lastRun = day
			remindIdleStreaks(db, notifier, now)
		}
	}()
}

func remindIdleStreaks(db *pgxpool.Pool, notifier utils.NotificationCreator, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	query := `
		SELECT DISTINCT m.user_id
		FROM meals m
		WHERE m.upload_time >= $1 AND m.upload_time < $2
		AND NOT EXISTS (
			SELECT 1 FROM meals t
			WHERE t.user_id = m.user_id AND t.upload_time >= $2
		)
	`

	rows, err := db.Query(ctx, query, yesterdayStart, todayStart)
	if err != nil {
		log.Printf("streak reminder: query failed: %v", err)
		return
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			continue
		}
		userIDs = append(userIDs, id)
	}

	for _, userID := range userIDs {
		req := &notification.CreateNotificationRequest{
			UserID:  userID,
			Type:    notification.TypeStreakRisk,
			Title:   "Your streak is at risk",
			Message: "You haven't logged any meals today. Log one to keep your streak alive!",
		}
		if _, err := notifier.CreateNotification(ctx, req); err != nil {
			log.Printf("streak reminder: failed to notify user %s: %v", userID, err)
		}
	}

	if len(userIDs) > 0 {
		log.Printf("streak reminder: nudged %d users", len(userIDs))
	}
}
