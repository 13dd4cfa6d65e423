package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/badge"
	"nutriTrackAPI/internal/event"
	"nutriTrackAPI/internal/goal"
	"nutriTrackAPI/internal/meal"
	"nutriTrackAPI/internal/stats"
	"nutriTrackAPI/internal/water"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

type stubStatsRepo struct {
	userID uuid.UUID
}

func (s *stubStatsRepo) UserIDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	return s.userID, nil
}

func (s *stubStatsRepo) MealsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*meal.Meal, error) {
	return nil, nil
}

func (s *stubStatsRepo) GoalsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*goal.DailyGoal, error) {
	return nil, nil
}

func (s *stubStatsRepo) WaterInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*water.Intake, error) {
	return nil, nil
}

func (s *stubStatsRepo) EventsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*event.Event, error) {
	return nil, nil
}

func (s *stubStatsRepo) RecentBadges(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*badge.Badge, error) {
	return nil, nil
}

func (s *stubStatsRepo) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func newStatsRequest(t *testing.T, target string, authenticated bool) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authenticated {
		ctx := context.WithValue(req.Context(), middleware.ClerkIDKey, "clerk_test")
		req = req.WithContext(ctx)
	}
	return req
}

func TestGetMonthlyStatsRequiresAuth(t *testing.T) {
	h := NewStatsHandler(services.NewStatsService(&stubStatsRepo{userID: uuid.New()}))

	rr := httptest.NewRecorder()
	h.GetMonthlyStats(rr, newStatsRequest(t, "/api/v1/user/stats/monthly?year=2024&month=6", false))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestGetMonthlyStatsRejectsBadParams(t *testing.T) {
	h := NewStatsHandler(services.NewStatsService(&stubStatsRepo{userID: uuid.New()}))

	cases := []string{
		"/api/v1/user/stats/monthly?year=abc&month=6",
		"/api/v1/user/stats/monthly?year=2024&month=xyz",
		"/api/v1/user/stats/monthly?year=2024&month=13",
		"/api/v1/user/stats/monthly?year=1969&month=6",
	}
	for _, target := range cases {
		rr := httptest.NewRecorder()
		h.GetMonthlyStats(rr, newStatsRequest(t, target, true))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestGetMonthlyStatsOK(t *testing.T) {
	h := NewStatsHandler(services.NewStatsService(&stubStatsRepo{userID: uuid.New()}))

	rr := httptest.NewRecorder()
	h.GetMonthlyStats(rr, newStatsRequest(t, "/api/v1/user/stats/monthly?year=2024&month=6", true))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result stats.MonthlyStats
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if result.Year != 2024 || result.Month != 6 {
		t.Errorf("expected period 2024-6, got %d-%d", result.Year, result.Month)
	}
	if result.TotalDays != 30 {
		t.Errorf("expected 30 total days, got %d", result.TotalDays)
	}
}

func TestGetDashboardOK(t *testing.T) {
	h := NewStatsHandler(services.NewStatsService(&stubStatsRepo{userID: uuid.New()}))

	rr := httptest.NewRecorder()
	h.GetDashboard(rr, newStatsRequest(t, "/api/v1/user/dashboard", true))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}
