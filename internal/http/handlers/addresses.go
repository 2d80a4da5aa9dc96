package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/address"
	"pawket-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// ListAddresses returns the user's active delivery addresses.
func ListAddresses(svc address.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		addresses, err := svc.List(r.Context(), u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list addresses")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
	}
}

// CreateAddress adds a delivery address for the user.
func CreateAddress(svc address.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		var input address.CreateAddressInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input.UserID = u.ID

		a, err := svc.Create(r.Context(), input)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"address": a})
	}
}

// DeleteAddress soft-deletes one of the user's addresses.
func DeleteAddress(svc address.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		if err := svc.Delete(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, address.ErrAddressNotFound) {
				respondError(w, http.StatusNotFound, "address not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to delete address")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// SetDefaultAddress marks one address as the default delivery target.
func SetDefaultAddress(svc address.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		if err := svc.SetDefault(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, address.ErrAddressNotFound) {
				respondError(w, http.StatusNotFound, "address not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to set default address")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
