package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/category"

	"github.com/go-chi/chi/v5"
)

// ListCategories returns all categories for the storefront navigation.
func ListCategories(svc category.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list categories")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func AdminCreateCategory(svc category.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input category.NewCategoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		c, err := svc.Create(r.Context(), input)
		if err != nil {
			if errors.Is(err, category.ErrNameRequired) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to create category")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"category": c})
	}
}

func AdminUpdateCategory(svc category.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input category.UpdateCategoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input.CategoryID = chi.URLParam(r, "id")

		if err := svc.Update(r.Context(), input); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				respondError(w, http.StatusNotFound, "category not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to update category")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func AdminDeleteCategory(svc category.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				respondError(w, http.StatusNotFound, "category not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to delete category")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
