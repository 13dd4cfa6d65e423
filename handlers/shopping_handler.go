package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"nutriTrackAPI/internal/shopping"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
	"time"

	"github.com/gorilla/mux"
)

type ShoppingHandler struct {
	shoppingService *services.ShoppingService
}

func NewShoppingHandler(shoppingService *services.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
	}
}

func (h *ShoppingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req shopping.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.shoppingService.AddItem(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	items, err := h.shoppingService.GetItems(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *ShoppingHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		respondWithError(w, http.StatusBadRequest, "item id is required")
		return
	}

	item, err := h.shoppingService.ToggleItem(ctx, clerkID, itemID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		respondWithError(w, http.StatusBadRequest, "item id is required")
		return
	}

	if err := h.shoppingService.DeleteItem(ctx, clerkID, itemID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
