package handler

import (
	"net/http"

	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.ListCategories)
		categories.GET("/tree", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleDealer), h.GetCategoryTree)
		categories.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateCategory)
		categories.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.DeleteCategory)
	}
}

// ListCategories handles GET /categories
// @Summary      List categories
// @Description  Returns the flat category list ordered by name
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Category}
// @Failure      500  {object}  response.Response
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// GetCategoryTree handles GET /categories/tree
// @Summary      Get category tree
// @Description  Returns all categories as a forest of root nodes with nested subcategories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.CategoryNode}
// @Failure      500  {object}  response.Response
// @Router       /categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.categoryService.GetCategoryTree(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tree))
}

// CreateCategory handles POST /categories
// @Summary      Create category
// @Description  Creates a category node. The parent, when given, must already exist.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCategoryDTO  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=model.Category}
// @Failure      400      {object}  response.Response
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// DeleteCategory handles DELETE /categories/:id
// @Summary      Delete category
// @Description  Deletes a leaf category. Categories with subcategories are refused.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Category deleted successfully"))
}
