package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// paymentHandler handles HTTP requests for payments and settlements.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// RegisterPaymentRoutes registers the payment and settlement routes.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("/:payment_id", h.getPayment)
		payments.POST("/:payment_id/apply", h.applyPayment)
		payments.POST("/:payment_id/auto-apply", h.autoApplyPayment)
	}

	applications := rg.Group("/payment-applications")
	{
		applications.POST("/:application_id/reverse", h.reverseApplication)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("/:customer_id/payments", h.listCustomerPayments)
		customers.GET("/:customer_id/outstanding", h.getOutstandingBalance)
	}
}

// recordPayment godoc
// @Summary Record payment
// @Description Records a payment received from a customer. The payment starts
// @Description unapplied; use apply or auto-apply to settle it against debit
// @Description entries.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get payment
// @Description Returns an active payment in the acting user's shop.
// @Tags payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{payment_id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("payment_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// applyPayment godoc
// @Summary Apply payment
// @Description Settles parts of the payment against the named debit entries
// @Description of the same customer.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Param applications body dto.ApplyPaymentRequest true "Entries and amounts"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{payment_id}/apply [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), c.Param("payment_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// autoApplyPayment godoc
// @Summary Auto-apply payment
// @Description Settles the payment's unapplied balance against the customer's
// @Description outstanding debit entries, oldest first.
// @Tags payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{payment_id}/auto-apply [post]
func (h *paymentHandler) autoApplyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	payment, err := h.paymentService.AutoApplyPayment(c.Request.Context(), c.Param("payment_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// reverseApplication godoc
// @Summary Reverse payment application
// @Description Undoes one payment application, restoring the amount to the
// @Description payment's unapplied balance.
// @Tags payments
// @Param application_id path string true "Application ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-applications/{application_id}/reverse [post]
func (h *paymentHandler) reverseApplication(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.paymentService.ReverseApplication(c.Request.Context(), c.Param("application_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listCustomerPayments godoc
// @Summary List customer payments
// @Description Lists the customer's active payments, newest first. With
// @Description unapplied=true, only payments that still have an unapplied
// @Description balance are returned, oldest first.
// @Tags payments
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param unapplied query bool false "Only payments with an unapplied balance"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id}/payments [get]
func (h *paymentHandler) listCustomerPayments(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	payments, err := h.paymentService.ListPaymentsForCustomer(
		c.Request.Context(), c.Param("customer_id"), userID, params.Unapplied, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// getOutstandingBalance godoc
// @Summary Customer outstanding balance
// @Description Reports which debit entries still carry unsettled amounts,
// @Description which payments are still unapplied, and the net between them.
// @Tags payments
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.OutstandingBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id}/outstanding [get]
func (h *paymentHandler) getOutstandingBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	balance, err := h.paymentService.GetOutstandingBalance(c.Request.Context(), c.Param("customer_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOutstandingBalanceResponse(balance))
}
