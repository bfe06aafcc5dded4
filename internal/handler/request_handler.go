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

type RequestHandler struct {
	replenishmentService service.ReplenishmentService
}

func NewRequestHandler(replenishmentService service.ReplenishmentService) *RequestHandler {
	return &RequestHandler{replenishmentService: replenishmentService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ListRequests)
		requests.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.CreateRequest)
		requests.PUT("/:id/approve", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ApproveRequest)
		requests.PUT("/:id/reject", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.RejectRequest)
	}
}

// ListRequests handles GET /requests
// @Summary      List import requests
// @Description  Retrieves a paginated request list, newest first, filterable by status
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        status  query     string  false  "Filter by status (pending|approved|rejected)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := pagination.Parse(c)

	requests, total, err := h.replenishmentService.ListRequests(c.Request.Context(), service.RequestFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// CreateRequest handles POST /requests
// @Summary      Create import request
// @Description  Files a pending replenishment request for a vendor and product
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateImportRequestDTO  true  "Create Request Payload"
// @Success      201      {object}  response.Response{data=service.ImportRequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req service.CreateImportRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.replenishmentService.CreateRequest(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ApproveRequest handles PUT /requests/:id/approve
// @Summary      Approve import request
// @Description  Moves the requested quantity from the product pool to the vendor's stock and marks the request approved. Fails if the request is already finalized or stock is insufficient.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ImportRequestResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /requests/{id}/approve [put]
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	approved, err := h.replenishmentService.Approve(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approved))
}

// RejectRequest handles PUT /requests/:id/reject
// @Summary      Reject import request
// @Description  Marks the request rejected. No stock field changes.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ImportRequestResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /requests/{id}/reject [put]
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	rejected, err := h.replenishmentService.Reject(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rejected))
}
