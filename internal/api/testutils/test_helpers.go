package testutils

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/daehyunk/picmarket/internal/api"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the raw password of the seeded test user; clients submit
// its SHA-256 hex, never the raw value.
const TestPassword = "testpassword"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Repository  *MemoryRepository
	Store       *MemoryStore
	Service     service.Service
	JWTSecret   []byte
	TestUserNum int64
	TestUserID  string
	TestUserJWT string
}

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	jwtSecret := "test-secret-key"

	repo := NewMemoryRepository()
	store := NewMemoryStore()
	svc := service.NewDefaultService(repo, store, jwtSecret)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(jwtSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	testUserNum, testUserID, token := createTestUser(t, repo, jwtSecret)

	return &TestContext{
		Router:      router,
		Repository:  repo,
		Store:       store,
		Service:     svc,
		JWTSecret:   []byte(jwtSecret),
		TestUserNum: testUserNum,
		TestUserID:  testUserID,
		TestUserJWT: token,
	}
}

// SHA256Hex returns the hex digest a client would submit for a raw password.
func SHA256Hex(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CreateTestUser registers an extra account directly through the repository
// and returns its user_num and a valid JWT.
func CreateTestUser(t *testing.T, ctx *TestContext, userID string) (int64, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(SHA256Hex(TestPassword)), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		UserID:         userID,
		UserAccount:    userID + "-account",
		UserPassword:   string(hashedPassword),
		UserPrivateKey: "test-private-key",
	}
	require.NoError(t, ctx.Repository.CreateUser(context.Background(), user))

	return user.UserNum, signTestJWT(t, user.UserNum, string(ctx.JWTSecret))
}

// CreateTestPicture seeds a picture owned by ownerNum.
func CreateTestPicture(t *testing.T, ctx *TestContext, ownerNum int64, title, category string, price int64, state models.PictureState) *models.Picture {
	t.Helper()

	picture := &models.Picture{
		TokenID:         uuid.New().String(),
		PictureURL:      "https://cdn.test/" + title + ".png",
		PictureTitle:    title,
		PictureInfo:     title + " info",
		PictureCategory: category,
		PicturePrice:    price,
		PictureState:    state,
		UserNum:         ownerNum,
	}
	require.NoError(t, ctx.Repository.CreatePicture(context.Background(), picture))
	return picture
}

func createTestUser(t *testing.T, repo *MemoryRepository, jwtSecret string) (int64, string, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(SHA256Hex(TestPassword)), bcrypt.DefaultCost)
	require.NoError(t, err, "Failed to hash test password")

	user := &models.User{
		UserID:         "testuser1",
		UserAccount:    "test-user-account",
		UserPassword:   string(hashedPassword),
		UserPrivateKey: "test-private-key",
	}

	err = repo.CreateUser(context.Background(), user)
	require.NoError(t, err, "Failed to create test user")

	return user.UserNum, user.UserID, signTestJWT(t, user.UserNum, jwtSecret)
}

func signTestJWT(t *testing.T, userNum int64, jwtSecret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userNum, 10),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err, "Failed to generate JWT token")

	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DecodeData unmarshals the {"data": ...} envelope into out.
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// MemoryStore is an in-memory ObjectStore for upload tests.
type MemoryStore struct {
	Objects map[string][]byte
}

// NewMemoryStore creates an empty in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: make(map[string][]byte)}
}

// Put records the object and returns a fake public URL.
func (s *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.Objects[key] = data
	return "https://cdn.test/" + key, nil
}
