package models

// Request models
type UserInsertRequest struct {
	UserID         string `json:"user_id" binding:"required,min=5,max=20"`
	UserAccount    string `json:"user_account" binding:"required,min=5,max=255"`
	UserPassword   string `json:"user_password" binding:"required,sha256"` // client-side SHA-256 hex, never a raw password
	UserPrivateKey string `json:"user_privatekey" binding:"required"`
}

type UserUpdateRequest struct {
	// UserNum is ignored on input; the handler overwrites it with the
	// authenticated caller before the service sees it.
	UserNum int64  `json:"user_num"`
	UserID  string `json:"user_id" binding:"omitempty,min=5,max=64"`
}

type UserLoginRequest struct {
	UserID       string `json:"user_id" binding:"required,min=5,max=20"`
	UserPassword string `json:"user_password" binding:"required,sha256"`
}

type PictureInsertRequest struct {
	PictureURL      string `json:"picture_url" binding:"required,max=100"`
	PictureTitle    string `json:"picture_title" binding:"required,min=1,max=45"`
	PictureInfo     string `json:"picture_info"`
	PictureCategory string `json:"picture_category" binding:"required,max=45"`
	PicturePrice    int64  `json:"picture_price" binding:"min=0"`
}

type PictureUpdateRequest struct {
	TokenID         string  `json:"token_id" binding:"required,uuid"`
	PictureURL      *string `json:"picture_url" binding:"omitempty,max=100"`
	PictureTitle    *string `json:"picture_title" binding:"omitempty,min=1,max=45"`
	PictureInfo     *string `json:"picture_info"`
	PictureCategory *string `json:"picture_category" binding:"omitempty,max=45"`
	PicturePrice    *int64  `json:"picture_price" binding:"omitempty,min=0"`
}

type PictureVectorRequest struct {
	PictureVector string  `json:"picture_vector" binding:"required"`
	PictureNorm   float64 `json:"picture_norm" binding:"required"`
}

type PictureSaleRequest struct {
	TokenID      string `json:"token_id" binding:"required,uuid"`
	PicturePrice int64  `json:"picture_price" binding:"min=0"`
}

type TradeRequest struct {
	TokenID string `json:"token_id" binding:"required,uuid"`
}

// Query models. "first" is the row offset and "last" the page size, kept from
// the original wire contract.
type PageQuery struct {
	First int `form:"first" binding:"min=0"`
	Last  int `form:"last" binding:"omitempty,min=1,max=100"`
}

type MyListQuery struct {
	State PictureState `form:"state" binding:"required,oneof=Y N"`
	First int          `form:"first" binding:"min=0"`
	Last  int          `form:"last" binding:"omitempty,min=1,max=100"`
}

type CategoryQuery struct {
	Category string `form:"category" binding:"required,max=45"`
	First    int    `form:"first" binding:"min=0"`
	Last     int    `form:"last" binding:"omitempty,min=1,max=100"`
}

type PriceQuery struct {
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
	First int    `form:"first" binding:"min=0"`
	Last  int    `form:"last" binding:"omitempty,min=1,max=100"`
}

// Response models
// DataResponse is the success envelope shared by every endpoint.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// PageResponse carries one page of rows plus the unpaginated total.
type PageResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	UserNum   int64  `json:"user_num"`
	UserID    string `json:"user_id"`
}

type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
