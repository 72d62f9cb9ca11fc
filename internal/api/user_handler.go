package api

import (
	"strconv"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/gin-gonic/gin"
)

// SearchUsers handles GET /users?name=
func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.svc.SearchUsers(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	if len(users) == 0 {
		respondNotFound(c, "No users matched")
		return
	}

	respondData(c, users)
}

// GetUser handles GET /users/detail/:id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, user)
}

// RegisterUser handles POST /users
func (h *Handler) RegisterUser(c *gin.Context) {
	var req models.UserInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.svc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, user)
}

// Login handles POST /users/login
func (h *Handler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, resp)
}

// UpdateUser handles PUT /users. The body's user_num is always replaced with
// the authenticated caller, so the update cannot touch another account.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	req.UserNum = callerNum(c)

	user, err := h.svc.UpdateUser(c.Request.Context(), req.UserNum, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, user)
}

// GetMyList handles GET /users/mylist/:user_num?state=&first=&last=
func (h *Handler) GetMyList(c *gin.Context) {
	userNum, err := strconv.ParseInt(c.Param("user_num"), 10, 64)
	if err != nil {
		respondBadRequest(c, "user_num must be an integer")
		return
	}

	var query models.MyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pictures, total, err := h.svc.GetUserPictures(c.Request.Context(), userNum, query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pictures) == 0 {
		respondNotFound(c, "No tokens matched")
		return
	}

	respondPage(c, pictures, total)
}

// GetHistory handles GET /users/history/:user_num?first=&last=
func (h *Handler) GetHistory(c *gin.Context) {
	userNum, err := strconv.ParseInt(c.Param("user_num"), 10, 64)
	if err != nil {
		respondBadRequest(c, "user_num must be an integer")
		return
	}

	var query models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	histories, total, err := h.svc.GetUserHistory(c.Request.Context(), userNum, query)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(histories) == 0 {
		respondNotFound(c, "No history found")
		return
	}

	respondPage(c, histories, total)
}
