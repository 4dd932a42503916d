// internal/services/auth_service_test.go
package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stoktrack/stok-backend/internal/config"
	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "users.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			StoreDir:    t.TempDir(),
			BusyTimeout: 5000,
		},
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}

	return NewAuthService(db, cfg, tenant.NewProvisioner(cfg.Database.BusyTimeout))
}

func TestRegisterProvisionsStore(t *testing.T) {
	s := newTestAuthService(t)

	resp, err := s.Register(&RegisterRequest{
		Username: "depokeeper",
		Email:    "keeper@example.com",
		Password: "Sifre1234",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// The account never exists without its stock store.
	assert.NotEmpty(t, resp.User.StorePath)
	_, err = os.Stat(resp.User.StorePath)
	assert.NoError(t, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := newTestAuthService(t)

	req := &RegisterRequest{
		Username: "depokeeper",
		Email:    "keeper@example.com",
		Password: "Sifre1234",
	}
	_, err := s.Register(req)
	require.NoError(t, err)

	_, err = s.Register(req)
	assert.Error(t, err)

	_, err = s.Register(&RegisterRequest{
		Username: "other",
		Email:    "keeper@example.com",
		Password: "Sifre1234",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Register(&RegisterRequest{
		Username: "depokeeper",
		Email:    "keeper@example.com",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Register(&RegisterRequest{
		Username: "depokeeper",
		Email:    "keeper@example.com",
		Password: "Sifre1234",
	})
	require.NoError(t, err)

	resp, err := s.Login(&LoginRequest{Username: "depokeeper", Password: "Sifre1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)

	_, err = s.Login(&LoginRequest{Username: "depokeeper", Password: "wrong"})
	assert.Error(t, err)

	_, err = s.Login(&LoginRequest{Username: "nobody", Password: "Sifre1234"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	s := newTestAuthService(t)

	registered, err := s.Register(&RegisterRequest{
		Username: "depokeeper",
		Email:    "keeper@example.com",
		Password: "Sifre1234",
	})
	require.NoError(t, err)

	refreshed, err := s.RefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	_, err = s.RefreshToken("not-a-token")
	assert.Error(t, err)
}
