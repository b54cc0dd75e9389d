package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userService := NewUserService()

	user, err := userService.Register(ctx, "neo", "the-matrix", "Thomas", "Anderson")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "the-matrix", user.Password)

	token, err := userService.Login(ctx, "neo", "the-matrix")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	found, err := userService.UserByToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userService := NewUserService()

	_, err := userService.Register(ctx, "neo", "pass1", "", "")
	require.NoError(t, err)
	_, err = userService.Register(ctx, "neo", "pass2", "", "")
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userService := NewUserService()

	_, err := userService.Register(ctx, "neo", "right", "", "")
	require.NoError(t, err)

	_, err = userService.Login(ctx, "neo", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = userService.Login(ctx, "ghost", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Повторный логин сбрасывает прежний токен
func TestLoginRotatesToken(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userService := NewUserService()

	_, err := userService.Register(ctx, "neo", "pass", "", "")
	require.NoError(t, err)

	oldToken, err := userService.Login(ctx, "neo", "pass")
	require.NoError(t, err)
	newToken, err := userService.Login(ctx, "neo", "pass")
	require.NoError(t, err)
	require.NotEqual(t, oldToken, newToken)

	_, err = userService.UserByToken(ctx, oldToken)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = userService.UserByToken(ctx, newToken)
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userService := NewUserService()

	_, err := userService.Register(ctx, "neo", "pass", "", "")
	require.NoError(t, err)
	token, err := userService.Login(ctx, "neo", "pass")
	require.NoError(t, err)

	require.NoError(t, userService.Logout(ctx, token))

	_, err = userService.UserByToken(ctx, token)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPasswordHashFormat(t *testing.T) {
	hash, err := hashPassword("secret")
	require.NoError(t, err)
	require.True(t, verifyPassword(hash, "secret"))
	require.False(t, verifyPassword(hash, "other"))

	// Два хеша одного пароля различаются солью
	other, err := hashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)
}
