package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the ledger entry routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/ledger/entries")
	{
		entries.POST("", h.recordEntry)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}
}

// recordEntry godoc
// @Summary Record ledger entry
// @Description Records a transaction against a customer and returns the entry
// @Description with the customer's balance after it was applied.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, balanceAfter, err := h.ledgerService.RecordEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ToLedgerEntryResponse(entry)
	resp.BalanceAfter = &balanceAfter
	c.JSON(http.StatusCreated, resp)
}

// getEntry godoc
// @Summary Get ledger entry
// @Description Returns an active entry in the acting user's shop.
// @Tags ledger
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries/{entry_id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update ledger entry
// @Description Overwrites the provided fields; amount or type changes
// @Description recompute the customer's balance.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateLedgerEntryRequest true "Fields to update"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries/{entry_id} [put]
func (h *ledgerHandler) updateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete ledger entry
// @Description Soft-deletes the entry and recomputes the customer's balance.
// @Tags ledger
// @Param entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries/{entry_id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), c.Param("entry_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
