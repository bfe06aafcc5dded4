package handler

import (
	"net/http"

	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/pkg/pagination"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	vendorService        service.VendorService
	replenishmentService service.ReplenishmentService
}

func NewVendorHandler(vendorService service.VendorService, replenishmentService service.ReplenishmentService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService, replenishmentService: replenishmentService}
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors")
	{
		vendors.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.ListVendors)
		vendors.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.GetVendor)
		vendors.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateVendor)
		vendors.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateVendor)
		vendors.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteVendor)

		vendors.PUT("/:id/authorized-users", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.SaveAuthorizedUsers)
		vendors.GET("/:id/candidates", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ListCandidates)

		vendors.GET("/:id/requests", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.ListVendorRequests)
		vendors.GET("/:id/stock", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.ListVendorStock)
	}
}

// ListVendors handles GET /vendors
// @Summary      List vendors
// @Description  Retrieves a paginated vendor list, filterable by name/phone search and province
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Param        search    query     string  false  "Name or phone search"
// @Param        province  query     string  false  "Filter by province"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	params := pagination.Parse(c)

	vendors, total, err := h.vendorService.ListVendors(c.Request.Context(), service.VendorFilter{
		Search:   c.Query("search"),
		Province: c.Query("province"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}

// GetVendor handles GET /vendors/:id
// @Summary      Get vendor by ID
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.Vendor}
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendor, err := h.vendorService.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// CreateVendor handles POST /vendors
// @Summary      Create vendor
// @Description  Creates a vendor. Province must be one of the known provinces.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVendorDTO  true  "Create Vendor Payload"
// @Success      201      {object}  response.Response{data=model.Vendor}
// @Failure      400      {object}  response.Response
// @Router       /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req service.CreateVendorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vendor))
}

// UpdateVendor handles PUT /vendors/:id
// @Summary      Update vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Vendor ID"
// @Param        payload  body      service.UpdateVendorDTO  true  "Update Vendor Payload"
// @Success      200      {object}  response.Response{data=model.Vendor}
// @Failure      400      {object}  response.Response
// @Router       /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	var req service.UpdateVendorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// DeleteVendor handles DELETE /vendors/:id
// @Summary      Delete vendor
// @Description  Soft deletes a vendor by ID
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	if err := h.vendorService.DeleteVendor(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vendor deleted successfully"))
}

type saveAuthorizedUsersRequest struct {
	Users []service.AuthorizedUserDTO `json:"users" binding:"required"`
}

// SaveAuthorizedUsers handles PUT /vendors/:id/authorized-users
// @Summary      Save authorized users
// @Description  Replaces the vendor's authorized user list. Duplicate user ids collapse.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Vendor ID"
// @Param        payload  body      saveAuthorizedUsersRequest  true  "Authorized Users"
// @Success      200      {object}  response.Response{data=model.Vendor}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /vendors/{id}/authorized-users [put]
func (h *VendorHandler) SaveAuthorizedUsers(c *gin.Context) {
	var req saveAuthorizedUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.SaveAuthorizedUsers(c.Request.Context(), currentUserID(c), c.Param("id"), req.Users)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// ListCandidates handles GET /vendors/:id/candidates
// @Summary      List authorization candidates
// @Description  Returns dealer accounts not yet authorized on the vendor. Search matches name or username, accent insensitive.
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Vendor ID"
// @Param        search  query     string  false  "Name or username search"
// @Success      200     {object}  response.Response{data=[]service.CandidateResponse}
// @Failure      404     {object}  response.Response
// @Router       /vendors/{id}/candidates [get]
func (h *VendorHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.vendorService.ListCandidates(c.Request.Context(), c.Param("id"), c.Query("search"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, candidates))
}

// ListVendorRequests handles GET /vendors/:id/requests
// @Summary      List vendor import requests
// @Description  Returns all import requests for the vendor, newest first
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=[]service.ImportRequestResponse}
// @Failure      400  {object}  response.Response
// @Router       /vendors/{id}/requests [get]
func (h *VendorHandler) ListVendorRequests(c *gin.Context) {
	requests, err := h.replenishmentService.ListVendorRequests(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListVendorStock handles GET /vendors/:id/stock
// @Summary      List vendor stock
// @Description  Returns the vendor's per-product stock ledger accumulated by approvals
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=[]service.VendorStockResponse}
// @Failure      400  {object}  response.Response
// @Router       /vendors/{id}/stock [get]
func (h *VendorHandler) ListVendorStock(c *gin.Context) {
	stock, err := h.replenishmentService.ListVendorStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}
