package api

import (
	"errors"
	"net/http"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler wires the service into gin routes.
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers every route on the router.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	users := router.Group("/users")
	{
		users.GET("", h.SearchUsers)
		users.GET("/detail/:id", h.GetUser)
		users.POST("", h.RegisterUser)
		users.POST("/login", h.Login)
		users.PUT("", AuthMiddleware(), h.UpdateUser)
		users.GET("/mylist/:user_num", h.GetMyList)
		users.GET("/history/:user_num", h.GetHistory)
	}

	pictures := router.Group("/pictures")
	{
		pictures.POST("", AuthMiddleware(), h.MintPicture)
		pictures.POST("/upload", AuthMiddleware(), h.UploadImage)
		pictures.PUT("", AuthMiddleware(), h.UpdatePicture)
		pictures.PUT("/vector/:token_id", h.SavePictureVector)
		pictures.POST("/sale", AuthMiddleware(), h.RegisterSale)
		pictures.DELETE("/sale/:token_id", AuthMiddleware(), h.CancelSale)
		pictures.POST("/trade", AuthMiddleware(), h.ExecuteTrade)
		pictures.GET("/search", h.SearchPictures)
		pictures.GET("/list/price", h.ListByPrice)
		pictures.GET("/list/category", h.ListByCategory)
		pictures.GET("/list/popularity", h.ListByPopularity)
		pictures.GET("/view/:token_id", h.ViewPicture)
		pictures.GET("/owner/:token_id", h.GetPictureOwner)
	}
}

// respondData writes the success envelope.
func respondData(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, models.DataResponse{Data: payload})
}

// respondPage writes one page of rows with its total.
func respondPage(c *gin.Context, items interface{}, total int64) {
	respondData(c, models.PageResponse{Items: items, Total: total})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Status:  "error",
		Code:    "NOT_FOUND",
		Message: message,
	})
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status: "error", Code: "FORBIDDEN", Message: err.Error(),
		})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "USER_EXISTS", Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status: "error", Code: "INVALID_CREDENTIALS", Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotForSale), errors.Is(err, service.ErrSelfTrade):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: "error", Code: "TRADE_REJECTED", Message: err.Error(),
		})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Status: "error", Code: "STORAGE_UNAVAILABLE", Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: "error", Code: "INTERNAL", Message: "Something went wrong",
		})
	}
}
