package handlers

import (
	"errors"
	"net/http"

	"github.com/kimuponpon0312-alt/ronbun/service"

	"github.com/gin-gonic/gin"
)

// BillingHandler handles HTTP requests for the Stripe upgrade flow
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateCheckout handles POST /api/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	user := currentUser(c)

	checkoutURL, err := h.billingService.CreateCheckoutSession(c.Request.Context(), user.Email, user.ID.String())
	if err != nil {
		if errors.Is(err, service.ErrStripeNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BILLING_UNAVAILABLE",
					"message": "決済機能は現在利用できません",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHECKOUT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": checkoutURL,
		},
	})
}

// VerifyCheckoutRequest represents the request body for confirming a
// completed checkout
type VerifyCheckoutRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// VerifyCheckout handles POST /api/checkout/verify
func (h *BillingHandler) VerifyCheckout(c *gin.Context) {
	var req VerifyCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	email, err := h.billingService.VerifyCheckoutSession(c.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentIncomplete):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PAYMENT_INCOMPLETE",
					"message": "決済が完了していません",
				},
			})
		case errors.Is(err, service.ErrNoCheckoutEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_EMAIL",
					"message": "決済セッションにメールアドレスがありません",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VERIFY_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"email":  email,
			"status": "active",
		},
	})
}
