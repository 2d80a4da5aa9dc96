package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/cart"
	"pawket-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// GetCart lists the authenticated user's cart with product details.
func GetCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		items, err := svc.List(r.Context(), u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load cart")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

// AddToCart adds a variant to the cart, merging with an existing line.
func AddToCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		var req struct {
			VariantID string `json:"variantId"`
			Quantity  int    `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		item, err := svc.Add(r.Context(), cart.AddParams{
			UserID:    u.ID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeCartError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"item": item})
	}
}

// UpdateCartItem sets an absolute quantity for a cart line.
func UpdateCartItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := svc.UpdateQuantity(r.Context(), cart.UpdateParams{
			UserID:    u.ID,
			VariantID: chi.URLParam(r, "variantId"),
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeCartError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// RemoveCartItem deletes one line from the cart.
func RemoveCartItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		err := svc.Remove(r.Context(), cart.RemoveParams{
			UserID:    u.ID,
			VariantID: chi.URLParam(r, "variantId"),
		})
		if err != nil {
			writeCartError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// ClearCart empties the cart.
func ClearCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		if err := svc.Clear(r.Context(), u.ID); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to clear cart")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrUserRequired), errors.Is(err, cart.ErrVariantRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "cart operation failed")
	}
}
