package handler

import (
	"net/http"

	"vendorhub/internal/imgbb"
	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// 10 MB, matching the ImgBB free tier limit
const maxUploadSize = 10 << 20

type UploadHandler struct {
	client *imgbb.Client
}

func NewUploadHandler(client *imgbb.Client) *UploadHandler {
	return &UploadHandler{client: client}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UploadImage)
}

// UploadImage handles POST /uploads
// @Summary      Upload image
// @Description  Proxies an image upload to the hosting provider and returns the hosted URL. The API key stays server-side.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  response.Response{data=imgbb.UploadResult}
// @Failure      400    {object}  response.Response
// @Failure      502    {object}  response.Response
// @Router       /uploads [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing image file"))
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Image exceeds the 10MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Cannot read image file"))
		return
	}
	defer file.Close()

	result, err := h.client.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "Image upload failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
