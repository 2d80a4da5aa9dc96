package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/middleware"
	"pawket-be/internal/user"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func newAuthResponse(token string, u user.User) authResponse {
	var resp authResponse
	resp.Token = token
	resp.User.ID = u.ID
	resp.User.Name = u.Name
	resp.User.Email = u.Email
	resp.User.Role = string(u.Role)
	return resp
}

// Register creates an account and returns a session token.
func Register(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || len(req.Password) < 8 {
			respondError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
			return
		}

		token, u, err := svc.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrEmailExists) {
				respondError(w, http.StatusConflict, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		respondJSON(w, http.StatusCreated, newAuthResponse(token, u))
	}
}

// Login exchanges credentials for a session token.
func Login(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				respondError(w, http.StatusUnauthorized, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}

		respondJSON(w, http.StatusOK, newAuthResponse(token, u))
	}
}

// GetProfile returns the authenticated user's profile.
func GetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		p, err := svc.Profile(r.Context(), u.ID)
		if err != nil {
			if errors.Is(err, user.ErrProfileNotFound) {
				respondError(w, http.StatusNotFound, "profile not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profile": p})
	}
}

// UpdateProfile creates or updates the authenticated user's profile.
func UpdateProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		var params user.UpdateProfileParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		params.UserID = u.ID

		p, err := svc.UpdateProfile(r.Context(), params)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to update profile")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profile": p})
	}
}

// DeleteAccount removes the account and its data. When some related records
// could not be removed the response reports partial: true with the failed
// steps, and the account itself is still deleted.
func DeleteAccount(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.UserFromContext(r.Context())

		report, err := svc.DeleteAccount(r.Context(), u.ID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				respondError(w, http.StatusNotFound, "user not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to delete account")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"partial": report.Partial,
			"failed":  report.Failed,
		})
	}
}
