package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
	"time"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	year := r.URL.Query().Get("year")
	month := r.URL.Query().Get("month")

	now := time.Now().UTC()
	yearInt := now.Year()
	monthInt := int(now.Month())

	if year != "" {
		if _, err := fmt.Sscanf(year, "%d", &yearInt); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid year format")
			return
		}
	}
	if month != "" {
		if _, err := fmt.Sscanf(month, "%d", &monthInt); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid month format")
			return
		}
	}

	monthlyStats, err := h.statsService.GetMonthlyStats(ctx, clerkID, yearInt, monthInt)
	if err != nil {
		if errors.Is(err, services.ErrAggregationFailed) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to compute monthly stats")
		return
	}

	respondWithJSON(w, http.StatusOK, monthlyStats)
}

func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	summary, err := h.statsService.GetDashboard(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
