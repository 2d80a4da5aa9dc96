package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawket-be/internal/logger"
	"pawket-be/internal/order"
	"pawket-be/internal/payment"
	"pawket-be/internal/razorpay"

	"go.uber.org/zap"
)

const (
	msgInvalidAmount      = "Invalid amount"
	msgNotConfigured      = "Razorpay credentials not configured. Please check your environment variables and add RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET"
	msgInvalidKeys        = "Invalid Razorpay API keys. Please check your credentials."
	msgCreateOrderFailed  = "Failed to create payment order"
	msgMissingDetails     = "Missing required payment details"
	msgInvalidSignature   = "Invalid payment signature"
	msgPaymentNotCaptured = "Payment not successful"
	msgOrderUpdateFailed  = "Failed to update order status"
	msgVerifyFailed       = "Payment verification failed"
)

// CreatePaymentOrder creates a gateway order for the requested amount.
func CreatePaymentOrder(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params payment.CreateOrderParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondError(w, http.StatusBadRequest, msgInvalidAmount)
			return
		}

		order, err := svc.CreateOrder(r.Context(), params)
		if err != nil {
			writeCreateOrderError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"order":   order,
		})
	}
}

func writeCreateOrderError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromCtx(r.Context())

	switch {
	case errors.Is(err, payment.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, msgInvalidAmount)
	case errors.Is(err, razorpay.ErrNotConfigured):
		log.Error("payment order rejected, gateway not configured")
		respondError(w, http.StatusInternalServerError, msgNotConfigured)
	default:
		var gwErr *razorpay.GatewayError
		if errors.As(err, &gwErr) && gwErr.IsAuthFailure() {
			log.Error("gateway rejected credentials", zap.Error(err))
			respondError(w, http.StatusInternalServerError, msgInvalidKeys)
			return
		}
		log.Error("payment order creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, msgCreateOrderFailed)
	}
}

// VerifyPayment checks the gateway signature and payment status, then marks
// the referenced order paid.
func VerifyPayment(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params payment.VerifyParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondError(w, http.StatusBadRequest, msgMissingDetails)
			return
		}

		verified, err := svc.Verify(r.Context(), params)
		if err != nil {
			writeVerifyError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Payment verified successfully",
			"payment": verified,
		})
	}
}

// PaymentFailed records a checkout the customer abandoned or the gateway
// declined, so the order is not left looking payment-pending forever.
func PaymentFailed(svc order.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OrderNumber string `json:"orderNumber"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderNumber == "" {
			respondError(w, http.StatusBadRequest, msgMissingDetails)
			return
		}

		if err := svc.MarkPaymentFailed(r.Context(), req.OrderNumber); err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				respondError(w, http.StatusNotFound, "order not found")
				return
			}
			logger.FromCtx(r.Context()).Error("failed to record payment failure",
				zap.String("order_number", req.OrderNumber),
				zap.Error(err),
			)
			respondError(w, http.StatusInternalServerError, msgOrderUpdateFailed)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func writeVerifyError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromCtx(r.Context())

	switch {
	case errors.Is(err, payment.ErrMissingDetails):
		respondError(w, http.StatusBadRequest, msgMissingDetails)
	case errors.Is(err, payment.ErrInvalidSignature):
		respondError(w, http.StatusBadRequest, msgInvalidSignature)
	case errors.Is(err, payment.ErrPaymentNotCaptured):
		respondError(w, http.StatusBadRequest, msgPaymentNotCaptured)
	case errors.Is(err, payment.ErrOrderUpdate):
		// Money is captured but the local order is stale. Keep this loud for
		// reconciliation.
		log.Error("order update failed after captured payment", zap.Error(err))
		respondError(w, http.StatusInternalServerError, msgOrderUpdateFailed)
	default:
		log.Error("payment verification failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, msgVerifyFailed)
	}
}
