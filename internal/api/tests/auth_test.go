package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/daehyunk/picmarket/internal/api/testutils"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful registration
	registerReq := models.UserInsertRequest{
		UserID:         "newuser1",
		UserAccount:    "new-user-account",
		UserPassword:   testutils.SHA256Hex("Password123"),
		UserPrivateKey: "private-key-material",
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users", registerReq, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	testutils.DecodeData(t, w, &user)
	assert.Equal(t, "newuser1", user.UserID)
	assert.NotZero(t, user.UserNum)

	// Test case 2: Duplicate handle
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users", registerReq, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Test case 3: Password that is not a SHA-256 hex digest fails before
	// anything is persisted
	invalidReq := models.UserInsertRequest{
		UserID:         "newuser2",
		UserAccount:    "another-account",
		UserPassword:   "not-a-hash",
		UserPrivateKey: "private-key-material",
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users", invalidReq, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := testCtx.Repository.GetUserByUserID(context.Background(), "newuser2")
	require.NoError(t, err)
	assert.Nil(t, stored, "validation failure must not reach the store")

	// Test case 4: Handle shorter than five characters
	shortReq := models.UserInsertRequest{
		UserID:         "abc",
		UserAccount:    "short-handle-account",
		UserPassword:   testutils.SHA256Hex("Password123"),
		UserPrivateKey: "private-key-material",
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users", shortReq, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login returns a token
	loginReq := models.UserLoginRequest{
		UserID:       testCtx.TestUserID,
		UserPassword: testutils.SHA256Hex(testutils.TestPassword),
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users/login", loginReq, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	testutils.DecodeData(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, testCtx.TestUserNum, resp.UserNum)

	// Test case 2: Wrong password
	wrongReq := models.UserLoginRequest{
		UserID:       testCtx.TestUserID,
		UserPassword: testutils.SHA256Hex("wrongpassword"),
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users/login", wrongReq, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Unknown handle
	unknownReq := models.UserLoginRequest{
		UserID:       "nosuchuser",
		UserPassword: testutils.SHA256Hex(testutils.TestPassword),
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users/login", unknownReq, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 4: Malformed password digest is rejected up front
	malformedReq := models.UserLoginRequest{
		UserID:       testCtx.TestUserID,
		UserPassword: "zz-not-hex",
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/users/login", malformedReq, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Mutating endpoints reject missing and malformed tokens
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/users",
		models.UserUpdateRequest{UserID: "renamed1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/users",
		models.UserUpdateRequest{UserID: "renamed1"},
		map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/pictures",
		models.PictureInsertRequest{
			PictureURL:      "https://cdn.test/a.png",
			PictureTitle:    "a",
			PictureCategory: "art",
		}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
