package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/daehyunk/picmarket/internal/api/testutils"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserDetail(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet,
		"/users/detail/"+testCtx.TestUserID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	testutils.DecodeData(t, w, &user)
	assert.Equal(t, testCtx.TestUserNum, user.UserNum)

	// Missing users are a 404, not {data: null}
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet,
		"/users/detail/nosuchuser", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUsers(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	testutils.CreateTestUser(t, testCtx, "painter99")

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/users?name=painter", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	testutils.DecodeData(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "painter99", users[0].UserID)

	// Empty result set is a 404
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/users?name=zzzzzz", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserPinsCaller(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	otherNum, _ := testutils.CreateTestUser(t, testCtx, "victim99")

	// The body names the other account, but the update must land on the
	// authenticated caller.
	req := models.UserUpdateRequest{
		UserNum: otherNum,
		UserID:  "renamed99",
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/users", req,
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	testutils.DecodeData(t, w, &updated)
	assert.Equal(t, testCtx.TestUserNum, updated.UserNum)
	assert.Equal(t, "renamed99", updated.UserID)

	victim, err := testCtx.Repository.GetUserByNum(context.Background(), otherNum)
	require.NoError(t, err)
	assert.Equal(t, "victim99", victim.UserID, "other account must be untouched")
}

func TestUpdateUserValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Handle below the minimum length
	req := models.UserUpdateRequest{UserID: "abc"}
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/users", req,
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Renaming onto an existing handle conflicts
	testutils.CreateTestUser(t, testCtx, "takenhandle")
	req = models.UserUpdateRequest{UserID: "takenhandle"}
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/users", req,
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMyListStatePartition(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	forSale := map[string]bool{}
	for i := 0; i < 2; i++ {
		p := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
			fmt.Sprintf("listed-%d", i), "art", 100, models.ForSale)
		forSale[p.TokenID] = true
	}
	held := map[string]bool{}
	for i := 0; i < 3; i++ {
		p := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
			fmt.Sprintf("held-%d", i), "art", 100, models.Held)
		held[p.TokenID] = true
	}

	base := fmt.Sprintf("/users/mylist/%d", testCtx.TestUserNum)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, base+"?state=Y", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []models.Picture `json:"items"`
		Total int64            `json:"total"`
	}
	testutils.DecodeData(t, w, &page)
	assert.Equal(t, int64(2), page.Total)
	for _, p := range page.Items {
		assert.True(t, forSale[p.TokenID])
		assert.False(t, held[p.TokenID], "Y and N sets must be disjoint")
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, base+"?state=N", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	testutils.DecodeData(t, w, &page)
	assert.Equal(t, int64(3), page.Total)
	for _, p := range page.Items {
		assert.True(t, held[p.TokenID])
	}

	// Invalid state value
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, base+"?state=X", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A user with no holdings gets a 404
	emptyNum, _ := testutils.CreateTestUser(t, testCtx, "nopictures")
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet,
		fmt.Sprintf("/users/mylist/%d?state=Y", emptyNum), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryEmpty(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet,
		fmt.Sprintf("/users/history/%d", testCtx.TestUserNum), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Non-numeric path parameter
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet,
		"/users/history/notanumber", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
