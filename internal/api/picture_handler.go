package api

import (
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/gin-gonic/gin"
)

// MintPicture handles POST /pictures
func (h *Handler) MintPicture(c *gin.Context) {
	var req models.PictureInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	picture, err := h.svc.MintPicture(c.Request.Context(), callerNum(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, picture)
}

// UploadImage handles POST /pictures/upload (multipart field "image")
func (h *Handler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondBadRequest(c, "image file is required")
		return
	}
	defer file.Close()

	resp, err := h.svc.UploadPictureImage(
		c.Request.Context(),
		callerNum(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, resp)
}

// UpdatePicture handles PUT /pictures
func (h *Handler) UpdatePicture(c *gin.Context) {
	var req models.PictureUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	picture, err := h.svc.UpdatePicture(c.Request.Context(), callerNum(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, picture)
}

// SavePictureVector handles PUT /pictures/vector/:token_id
func (h *Handler) SavePictureVector(c *gin.Context) {
	var req models.PictureVectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.SavePictureVector(c.Request.Context(), c.Param("token_id"), req); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, gin.H{"token_id": c.Param("token_id")})
}

// RegisterSale handles POST /pictures/sale
func (h *Handler) RegisterSale(c *gin.Context) {
	var req models.PictureSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.RegisterSale(c.Request.Context(), callerNum(c), req); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, gin.H{"token_id": req.TokenID, "picture_state": models.ForSale})
}

// CancelSale handles DELETE /pictures/sale/:token_id
func (h *Handler) CancelSale(c *gin.Context) {
	tokenID := c.Param("token_id")

	if err := h.svc.CancelSale(c.Request.Context(), callerNum(c), tokenID); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, gin.H{"token_id": tokenID, "picture_state": models.Held})
}

// ExecuteTrade handles POST /pictures/trade; the buyer is the caller.
func (h *Handler) ExecuteTrade(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	history, err := h.svc.ExecuteTrade(c.Request.Context(), callerNum(c), req.TokenID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, history)
}

// SearchPictures handles GET /pictures/search?keyword=&first=&last=
func (h *Handler) SearchPictures(c *gin.Context) {
	var query models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pictures, total, err := h.svc.SearchPictures(c.Request.Context(), c.Query("keyword"), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pictures) == 0 {
		respondNotFound(c, "No pictures matched")
		return
	}

	respondPage(c, pictures, total)
}

// ListByPrice handles GET /pictures/list/price?order=&first=&last=
func (h *Handler) ListByPrice(c *gin.Context) {
	var query models.PriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pictures, total, err := h.svc.ListByPrice(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pictures) == 0 {
		respondNotFound(c, "No pictures for sale")
		return
	}

	respondPage(c, pictures, total)
}

// ListByCategory handles GET /pictures/list/category?category=&first=&last=
func (h *Handler) ListByCategory(c *gin.Context) {
	var query models.CategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pictures, total, err := h.svc.ListByCategory(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pictures) == 0 {
		respondNotFound(c, "No pictures in this category")
		return
	}

	respondPage(c, pictures, total)
}

// ListByPopularity handles GET /pictures/list/popularity?first=&last=
func (h *Handler) ListByPopularity(c *gin.Context) {
	var query models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pictures, total, err := h.svc.ListByPopularity(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pictures) == 0 {
		respondNotFound(c, "No pictures for sale")
		return
	}

	respondPage(c, pictures, total)
}

// ViewPicture handles GET /pictures/view/:token_id and bumps the view count.
func (h *Handler) ViewPicture(c *gin.Context) {
	picture, err := h.svc.ViewPicture(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, picture)
}

// GetPictureOwner handles GET /pictures/owner/:token_id
func (h *Handler) GetPictureOwner(c *gin.Context) {
	owner, err := h.svc.GetPictureOwner(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, owner)
}
