package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daehyunk/picmarket/internal/api/testutils"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/stretchr/testify/assert"
)

type picturePage struct {
	Items []models.Picture `json:"items"`
	Total int64            `json:"total"`
}

func getPage(t *testing.T, testCtx *testutils.TestContext, path string) (*httptest.ResponseRecorder, picturePage) {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, path, nil, nil)
	var page picturePage
	if w.Code == http.StatusOK {
		testutils.DecodeData(t, w, &page)
	}
	return w, page
}

func TestListingsExcludeHeldTokens(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	listed := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"public piece", "art", 300, models.ForSale)
	hidden := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"private piece", "art", 100, models.Held)

	paths := []string{
		"/pictures/search?keyword=piece",
		"/pictures/list/price",
		"/pictures/list/category?category=art",
		"/pictures/list/popularity",
	}

	for _, path := range paths {
		w, page := getPage(t, testCtx, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, int64(1), page.Total, path)
		for _, p := range page.Items {
			assert.NotEqual(t, hidden.TokenID, p.TokenID, "held token leaked via "+path)
			assert.Equal(t, models.ForSale, p.PictureState, path)
		}
		assert.Equal(t, listed.TokenID, page.Items[0].TokenID, path)
	}
}

func TestSearchByKeyword(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"blue ocean", "seascape", 300, models.ForSale)
	testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"red desert", "landscape", 200, models.ForSale)

	// Title match
	w, page := getPage(t, testCtx, "/pictures/search?keyword=ocean")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), page.Total)

	// Category match through the same OR filter
	w, page = getPage(t, testCtx, "/pictures/search?keyword=scape")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), page.Total)

	// No match is a 404
	w, _ = getPage(t, testCtx, "/pictures/search?keyword=nothinghere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListByPriceOrdering(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	prices := []int64{300, 100, 500}
	for i, price := range prices {
		testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
			fmt.Sprintf("priced-%d", i), "art", price, models.ForSale)
	}

	// Default is highest price first
	w, page := getPage(t, testCtx, "/pictures/list/price")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{500, 300, 100}, itemPrices(page.Items))

	// Explicit ascending order
	w, page = getPage(t, testCtx, "/pictures/list/price?order=asc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{100, 300, 500}, itemPrices(page.Items))

	// Unknown order value
	w, _ = getPage(t, testCtx, "/pictures/list/price?order=sideways")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByPopularityOrdering(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	cold := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"cold", "art", 100, models.ForSale)
	hot := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"hot", "art", 100, models.ForSale)

	for i := 0; i < 5; i++ {
		testutils.PerformRequest(testCtx.Router, http.MethodGet,
			"/pictures/view/"+hot.TokenID, nil, nil)
	}
	testutils.PerformRequest(testCtx.Router, http.MethodGet,
		"/pictures/view/"+cold.TokenID, nil, nil)

	w, page := getPage(t, testCtx, "/pictures/list/popularity")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, hot.TokenID, page.Items[0].TokenID)
	assert.Equal(t, int64(5), page.Items[0].PictureCount)
}

func TestListingPagination(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	for i := 0; i < 7; i++ {
		testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
			fmt.Sprintf("page-%d", i), "art", int64(100+i), models.ForSale)
	}

	// First page of three
	w, page := getPage(t, testCtx, "/pictures/list/price?first=0&last=3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(7), page.Total, "total counts all matching rows")

	// Offset past the end is an empty page, reported as 404
	w, _ = getPage(t, testCtx, "/pictures/list/price?first=100&last=3")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Page size above the cap fails validation
	w, _ = getPage(t, testCtx, "/pictures/list/price?first=0&last=1000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itemPrices(items []models.Picture) []int64 {
	prices := make([]int64, 0, len(items))
	for _, p := range items {
		prices = append(prices, p.PicturePrice)
	}
	return prices
}
