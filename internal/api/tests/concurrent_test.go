package api_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/daehyunk/picmarket/internal/api/testutils"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentViewCounting drives N parallel detail views at one token and
// expects the counter to land on exactly N.
func TestConcurrentViewCounting(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	picture := testutils.CreateTestPicture(t, testCtx, testCtx.TestUserNum,
		"contended", "art", 100, models.ForSale)

	const viewers = 50

	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			w := testutils.PerformRequest(testCtx.Router, http.MethodGet,
				"/pictures/view/"+picture.TokenID, nil, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	stored, err := testCtx.Repository.GetPicture(context.Background(), picture.TokenID)
	require.NoError(t, err)
	assert.Equal(t, int64(viewers), stored.PictureCount, "no view may be lost")
}
