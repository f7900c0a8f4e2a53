package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// shopHandler handles HTTP requests for shops and staff assignments.
type shopHandler struct {
	shopService portssvc.ShopSvcFacade
}

func newShopHandler(ss portssvc.ShopSvcFacade) *shopHandler {
	return &shopHandler{shopService: ss}
}

// registerShopRoutes registers shop and staff assignment routes.
func registerShopRoutes(rg *gin.RouterGroup, shopService portssvc.ShopSvcFacade) {
	h := newShopHandler(shopService)

	shops := rg.Group("/shops")
	{
		shops.POST("", h.createShop)
		shops.GET("", h.listShops)
		shops.GET("/:shop_id", h.getShop)
		shops.POST("/:shop_id/staff", h.assignStaff)
		shops.DELETE("/:shop_id/staff/:user_id", h.revokeStaff)
	}
}

// createShop godoc
// @Summary Create a shop
// @Description Creates a shop owned by the authenticated user.
// @Tags shops
// @Accept json
// @Produce json
// @Param shop body dto.CreateShopRequest true "Shop details"
// @Success 201 {object} dto.ShopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops [post]
func (h *shopHandler) createShop(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToShopResponse(shop))
}

// listShops godoc
// @Summary List shops
// @Description Lists the shops the authenticated user may act on.
// @Tags shops
// @Produce json
// @Success 200 {object} dto.ListShopsResponse
// @Security BearerAuth
// @Router /shops [get]
func (h *shopHandler) listShops(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	shops, err := h.shopService.ListShopsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListShopsResponse(shops))
}

// getShop godoc
// @Summary Get shop
// @Description Returns a shop the authenticated user owns or is assigned to.
// @Tags shops
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shop_id} [get]
func (h *shopHandler) getShop(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	shop, err := h.shopService.GetShopByID(c.Request.Context(), c.Param("shop_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// assignStaff godoc
// @Summary Assign staff to shop
// @Description Maps an active staff user onto the shop; shop owner only.
// @Tags shops
// @Accept json
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Param staff body dto.AssignStaffRequest true "Staff user"
// @Success 201 {object} domain.StaffShopMapping
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shop_id}/staff [post]
func (h *shopHandler) assignStaff(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	mapping, err := h.shopService.AssignStaff(c.Request.Context(), c.Param("shop_id"), req.StaffUserID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

// revokeStaff godoc
// @Summary Revoke staff from shop
// @Description Deactivates the staff user's mapping; shop owner only.
// @Tags shops
// @Param shop_id path string true "Shop ID"
// @Param user_id path string true "Staff user ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shop_id}/staff/{user_id} [delete]
func (h *shopHandler) revokeStaff(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.shopService.RevokeStaff(c.Request.Context(), c.Param("shop_id"), c.Param("user_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
