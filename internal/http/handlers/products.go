package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pawket-be/internal/product"

	"github.com/go-chi/chi/v5"
)

// ListProducts is the public catalog listing with optional filters.
func ListProducts(svc product.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := product.ListOptions{OnlyActive: true}
		opts.Limit, opts.Page = pagination(r)

		q := r.URL.Query()
		if v := q.Get("category"); v != "" {
			opts.CategorySlug = &v
		}
		if v := q.Get("search"); v != "" {
			opts.Search = &v
		}
		if v := q.Get("minPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				opts.MinPrice = &f
			}
		}
		if v := q.Get("maxPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				opts.MaxPrice = &f
			}
		}
		opts.SortBy = q.Get("sort")

		products, total, err := svc.List(r.Context(), opts)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list products")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    total,
		})
	}
}

// GetProduct returns one product with its variants, by id or slug.
func GetProduct(svc product.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "idOrSlug")

		p, err := svc.GetByID(r.Context(), key)
		if errors.Is(err, product.ErrProductNotFound) {
			p, err = svc.GetBySlug(r.Context(), key)
		}
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "product not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to get product")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"product": p})
	}
}

// AdminCreateProduct adds a product with its variants to the catalog.
func AdminCreateProduct(svc product.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input product.NewProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p, err := svc.Create(r.Context(), input)
		if err != nil {
			if errors.Is(err, product.ErrNameRequired) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to create product")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"product": p})
	}
}

// AdminUpdateProduct applies a partial product update.
func AdminUpdateProduct(svc product.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input product.UpdateProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input.ProductID = chi.URLParam(r, "id")

		if err := svc.Update(r.Context(), input); err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "product not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to update product")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// AdminUpdateStock sets the absolute stock of a variant.
func AdminUpdateStock(svc product.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Stock int `json:"stock"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stock < 0 {
			respondError(w, http.StatusBadRequest, "invalid stock value")
			return
		}

		err := svc.UpdateVariantStock(r.Context(), chi.URLParam(r, "variantId"), req.Stock)
		if err != nil {
			if errors.Is(err, product.ErrVariantNotFound) {
				respondError(w, http.StatusNotFound, "variant not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to update stock")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
