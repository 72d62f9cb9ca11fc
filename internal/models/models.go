package models

import (
	"time"
)

// PictureState is the sale-listing flag of a picture token.
type PictureState string

const (
	// ForSale marks a token listed on the marketplace.
	ForSale PictureState = "Y"
	// Held marks a token kept privately by its owner.
	Held PictureState = "N"
)

// Valid reports whether the state is one of the two known variants.
func (s PictureState) Valid() bool {
	return s == ForSale || s == Held
}

// User represents a registered account
type User struct {
	UserNum        int64     `db:"user_num" json:"user_num"`
	UserID         string    `db:"user_id" json:"user_id"`
	UserAccount    string    `db:"user_account" json:"user_account"`
	UserPassword   string    `db:"user_password" json:"-"` // bcrypt over the client-side SHA-256 hex
	UserPrivateKey string    `db:"user_privatekey" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Picture represents a tokenized picture asset
type Picture struct {
	TokenID         string       `db:"token_id" json:"token_id"`
	PictureURL      string       `db:"picture_url" json:"picture_url"`
	PictureTitle    string       `db:"picture_title" json:"picture_title"`
	PictureInfo     string       `db:"picture_info" json:"picture_info"`
	PictureCategory string       `db:"picture_category" json:"picture_category"`
	PicturePrice    int64        `db:"picture_price" json:"picture_price"`
	PictureCount    int64        `db:"picture_count" json:"picture_count"`
	PictureState    PictureState `db:"picture_state" json:"picture_state"`
	PictureVector   *string      `db:"picture_vector" json:"picture_vector,omitempty"`
	PictureNorm     *float64     `db:"picture_norm" json:"picture_norm,omitempty"`
	UserNum         int64        `db:"user_num" json:"user_num"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updatedAt"`
}

// History is an immutable trade record. Picture fields are a snapshot taken
// at trade time; later edits to the picture do not rewrite history.
type History struct {
	HistoryNum   int64     `db:"history_num" json:"history_num"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UserNum1     int64     `db:"user_num1" json:"user_num1"` // seller
	UserNum2     int64     `db:"user_num2" json:"user_num2"` // buyer
	PictureURL   string    `db:"picture_url" json:"picture_url"`
	PictureTitle string    `db:"picture_title" json:"picture_title"`
	PicturePrice int64     `db:"picture_price" json:"picture_price"`
}

// PictureOwner pairs a token with its owner's account name.
type PictureOwner struct {
	TokenID     string `db:"token_id" json:"token_id"`
	UserAccount string `db:"user_account" json:"user_account"`
}
