package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pawket-be/internal/middleware"
	"pawket-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type checkoutRequest struct {
	PaymentMethod string         `json:"paymentMethod"`
	DeliveryFee   float64        `json:"deliveryFee"`
	DeliveryNotes *string        `json:"deliveryNotes"`
	Items         []checkoutItem `json:"items"`
}

type checkoutItem struct {
	VariantID string  `json:"variantId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Checkout places a new order. Anonymous checkout is allowed, the order is
// then only reachable by its order number.
func Checkout(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		params := order.CheckoutParams{
			PaymentMethod: req.PaymentMethod,
			DeliveryFee:   req.DeliveryFee,
			DeliveryNotes: req.DeliveryNotes,
		}
		if u, ok := middleware.UserFromContext(r.Context()); ok {
			params.CustomerID = &u.ID
		}
		for _, it := range req.Items {
			params.Items = append(params.Items, order.NewOrderItem{
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}

		o, err := svc.Checkout(r.Context(), params)
		if err != nil {
			switch {
			case errors.Is(err, order.ErrEmptyOrder),
				errors.Is(err, order.ErrInvalidQuantity),
				errors.Is(err, order.ErrInvalidMethod):
				respondError(w, http.StatusBadRequest, err.Error())
			default:
				respondError(w, http.StatusInternalServerError, "failed to place order")
			}
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"order": o})
	}
}

// MyOrders lists the authenticated customer's orders.
func MyOrders(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		limit, page := pagination(r)
		orders, err := svc.MyOrders(r.Context(), u.ID, limit, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list orders")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

// GetOrder returns one of the customer's own orders.
func GetOrder(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		o, err := svc.GetOrder(r.Context(), u.ID, chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, order.ErrOrderNotFound):
				respondError(w, http.StatusNotFound, "order not found")
			case errors.Is(err, order.ErrForbidden):
				respondError(w, http.StatusForbidden, "order belongs to another customer")
			default:
				respondError(w, http.StatusInternalServerError, "failed to get order")
			}
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"order": o})
	}
}

// TrackOrder is the public order tracking endpoint, keyed by order number.
func TrackOrder(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.TrackByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				respondError(w, http.StatusNotFound, "order not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to track order")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"order": o})
	}
}

// AdminListOrders lists all orders with an optional status filter.
func AdminListOrders(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *order.Status
		if v := r.URL.Query().Get("status"); v != "" {
			s := order.Status(v)
			status = &s
		}

		limit, page := pagination(r)
		orders, total, err := svc.AdminList(r.Context(), status, limit, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list orders")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"orders": orders,
			"total":  total,
		})
	}
}

// AdminUpdateOrderStatus moves an order along its lifecycle.
func AdminUpdateOrderStatus(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status order.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, order.ErrOrderNotFound):
				respondError(w, http.StatusNotFound, "order not found")
			case errors.Is(err, order.ErrInvalidTransition):
				respondError(w, http.StatusBadRequest, err.Error())
			default:
				respondError(w, http.StatusInternalServerError, "failed to update order")
			}
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func pagination(r *http.Request) (limit, page int) {
	limit, page = 20, 1
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	return limit, page
}
