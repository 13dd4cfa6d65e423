package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"nutriTrackAPI/internal/water"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
	"time"
)

type WaterHandler struct {
	waterService *services.WaterService
}

func NewWaterHandler(waterService *services.WaterService) *WaterHandler {
	return &WaterHandler{
		waterService: waterService,
	}
}

func (h *WaterHandler) LogWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req water.LogWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AmountMl <= 0 {
		respondWithError(w, http.StatusBadRequest, "amount_ml must be positive")
		return
	}

	intake, err := h.waterService.LogWater(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, intake)
}

func (h *WaterHandler) GetWaterByDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	intake, err := h.waterService.GetWaterByDate(ctx, clerkID, date)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, intake)
}
