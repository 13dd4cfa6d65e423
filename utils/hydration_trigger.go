package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/notification"
)

// NotificationCreator is the one method the triggers need from the
// notification service, so callers don't depend on the whole service.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
}

// HydrationGoalReached fires when a water log crosses the daily hydration
// goal. Runs in the background, failures are logged only.
func HydrationGoalReached(notifier NotificationCreator, userID uuid.UUID, totalMl float64) {
	bgCtx := context.Background()

	req := &notification.CreateNotificationRequest{
		UserID:  userID,
		Type:    notification.TypeHydrationGoal,
		Title:   "Hydration goal reached!",
		Message: fmt.Sprintf("You've logged %.0f ml of water today. Great work!", totalMl),
		Data: map[string]any{
			"total_ml": totalMl,
		},
	}

	if _, err := notifier.CreateNotification(bgCtx, req); err != nil {
		log.Printf("Failed to create hydration notification for %s: %v", userID, err)
	}
}
