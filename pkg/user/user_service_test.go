package user

import (
	"recipebook/domain"
	"recipebook/entities"
	"recipebook/pkg/jwt"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}))
	return NewUserService(NewUserRepository(db), jwt.NewJWTService())
}

func TestRegisterAndLogin(t *testing.T) {
	service := newTestService(t)

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)
	require.Equal(t, "alice@example.com", registered.Email)

	login, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newTestService(t)

	req := domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := newTestService(t)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "hunter22",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
