package service_test

import (
	"context"
	"testing"

	"github.com/daehyunk/picmarket/internal/api/testutils"
	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (service.Service, *testutils.MemoryRepository) {
	t.Helper()
	repo := testutils.NewMemoryRepository()
	return service.NewDefaultService(repo, testutils.NewMemoryStore(), "unit-test-secret"), repo
}

func TestRegisterWrapsDigestWithBcrypt(t *testing.T) {
	svc, repo := newService(t)

	digest := testutils.SHA256Hex("hunter2hunter2")
	user, err := svc.RegisterUser(context.Background(), models.UserInsertRequest{
		UserID:         "collector1",
		UserAccount:    "collector-account",
		UserPassword:   digest,
		UserPrivateKey: "key-material",
	})
	require.NoError(t, err)

	stored, err := repo.GetUserByUserID(context.Background(), "collector1")
	require.NoError(t, err)
	require.NotNil(t, stored)

	// The submitted digest is never stored as-is
	assert.NotEqual(t, digest, stored.UserPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.UserPassword), []byte(digest)))
	assert.Equal(t, user.UserNum, stored.UserNum)

	// Registering the same handle again conflicts
	_, err = svc.RegisterUser(context.Background(), models.UserInsertRequest{
		UserID:         "collector1",
		UserAccount:    "other-account",
		UserPassword:   digest,
		UserPrivateKey: "key-material",
	})
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginComparesDigest(t *testing.T) {
	svc, _ := newService(t)

	digest := testutils.SHA256Hex("hunter2hunter2")
	_, err := svc.RegisterUser(context.Background(), models.UserInsertRequest{
		UserID:         "collector1",
		UserAccount:    "collector-account",
		UserPassword:   digest,
		UserPrivateKey: "key-material",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.UserLoginRequest{
		UserID:       "collector1",
		UserPassword: digest,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), models.UserLoginRequest{
		UserID:       "collector1",
		UserPassword: testutils.SHA256Hex("wrong"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.UserLoginRequest{
		UserID:       "ghostuser",
		UserPassword: digest,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateUserWithoutHandleIsNoop(t *testing.T) {
	svc, _ := newService(t)

	digest := testutils.SHA256Hex("hunter2hunter2")
	created, err := svc.RegisterUser(context.Background(), models.UserInsertRequest{
		UserID:         "collector1",
		UserAccount:    "collector-account",
		UserPassword:   digest,
		UserPrivateKey: "key-material",
	})
	require.NoError(t, err)

	user, err := svc.UpdateUser(context.Background(), created.UserNum, models.UserUpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "collector1", user.UserID)

	_, err = svc.UpdateUser(context.Background(), 9999, models.UserUpdateRequest{UserID: "whatever99"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
