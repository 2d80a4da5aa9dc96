package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/inventory"

	"github.com/go-chi/chi/v5"
)

func writeIngredientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrIngredientNotFound):
		respondError(w, http.StatusNotFound, "Ingredient not found")
	case errors.Is(err, inventory.ErrNameRequired),
		errors.Is(err, inventory.ErrUnitRequired),
		errors.Is(err, inventory.ErrNegativeValue):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Failed to save ingredient")
	}
}

// ListIngredients returns the raw-material inventory, optionally narrowed to
// items at or below their reorder level.
func ListIngredients(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			ingredients []*inventory.Ingredient
			err         error
		)
		if r.URL.Query().Get("lowStock") == "true" {
			ingredients, err = svc.ListLowStockIngredients(r.Context())
		} else {
			ingredients, err = svc.ListIngredients(r.Context())
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"data": ingredients})
	}
}

func CreateIngredient(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input inventory.IngredientInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		i, err := svc.CreateIngredient(r.Context(), input)
		if err != nil {
			writeIngredientError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"data": i})
	}
}

func UpdateIngredient(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input inventory.IngredientInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		i, err := svc.UpdateIngredient(r.Context(), chi.URLParam(r, "id"), input)
		if err != nil {
			writeIngredientError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"data": i})
	}
}

func DeleteIngredient(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteIngredient(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeIngredientError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func ListVendors(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := svc.ListVendors(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch vendors")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"data": vendors})
	}
}

func CreateVendor(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input inventory.NewVendorInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		v, err := svc.CreateVendor(r.Context(), input)
		if err != nil {
			if errors.Is(err, inventory.ErrNameRequired) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "Failed to create vendor")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"data": v})
	}
}

// ListRecipeItems returns all recipe rows, or one product's recipe when the
// productId query parameter is set.
func ListRecipeItems(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var productID *string
		if v := r.URL.Query().Get("productId"); v != "" {
			productID = &v
		}

		items, err := svc.ListRecipeItems(r.Context(), productID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch recipes")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"data": items})
	}
}

func writeRecipeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrRecipeItemNotFound):
		respondError(w, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, inventory.ErrRecipeRefRequired),
		errors.Is(err, inventory.ErrInvalidPercentage):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Failed to save recipe")
	}
}

func CreateRecipeItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input inventory.RecipeItemInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		it, err := svc.AddRecipeItem(r.Context(), input)
		if err != nil {
			writeRecipeError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"data": it})
	}
}

func UpdateRecipeItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Percentage float64 `json:"percentage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.UpdateRecipePercentage(r.Context(), chi.URLParam(r, "id"), req.Percentage); err != nil {
			writeRecipeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func DeleteRecipeItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveRecipeItem(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeRecipeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
