package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// customerHandler handles HTTP requests for customer records.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	ledgerService   portssvc.LedgerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, ls portssvc.LedgerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs, ledgerService: ls}
}

// RegisterCustomerRoutes registers customer CRUD routes plus the per-customer
// ledger views.
func RegisterCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newCustomerHandler(customerService, ledgerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customer_id", h.getCustomer)
		customers.PUT("/:customer_id", h.updateCustomer)
		customers.DELETE("/:customer_id", h.deleteCustomer)
		customers.GET("/:customer_id/entries", h.listCustomerEntries)
		customers.GET("/:customer_id/summary", h.getCustomerSummary)
	}
}

// createCustomer godoc
// @Summary Create customer
// @Description Creates a customer or supplier record in the acting user's shop.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Lists the active customers of the acting user's shop.
// @Tags customers
// @Produce json
// @Param shopID query string false "Shop ID (required for owners of several shops)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), userID, params.ShopID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomer godoc
// @Summary Get customer
// @Description Returns an active customer of the acting user's shop.
// @Tags customers
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("customer_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update customer
// @Description Overwrites the provided mutable fields of the customer.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("customer_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete customer
// @Description Soft-deletes the customer; ledger history is retained.
// @Tags customers
// @Param customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("customer_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listCustomerEntries godoc
// @Summary List customer ledger entries
// @Description Lists the customer's active entries, newest first.
// @Tags ledger
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id}/entries [get]
func (h *customerHandler) listCustomerEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.ListEntriesForCustomer(c.Request.Context(), c.Param("customer_id"), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries))
}

// getCustomerSummary godoc
// @Summary Customer balance summary
// @Description Aggregates the customer's active ledger entries.
// @Tags ledger
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id}/summary [get]
func (h *customerHandler) getCustomerSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	summary, err := h.ledgerService.GetCustomerBalanceSummary(c.Request.Context(), c.Param("customer_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}
