package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"yatube/db"
	"yatube/models"

	"golang.org/x/crypto/argon2"
)

// ErrInvalidCredentials - неверная пара логин/пароль
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(hash) == parts[1]
}

// Register создает пользователя с argon2id-хешем пароля
func (us *UserService) Register(ctx context.Context, username, password, firstName, lastName string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	var alreadyExists int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&alreadyExists).Error
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if alreadyExists > 0 {
		return nil, fmt.Errorf("user %q already exists", username)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  passwordHash,
	}
	if err := db.GetWriteDB(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login проверяет пароль и выдает новый токен, сбрасывая старые
func (us *UserService) Login(ctx context.Context, username, password string) (string, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !verifyPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	err = db.GetWriteDB(ctx).Where("user_id = ?", user.ID).Delete(&models.UserToken{}).Error
	if err != nil {
		return "", fmt.Errorf("failed to drop old tokens: %w", err)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	err = db.GetWriteDB(ctx).Create(&models.UserToken{UserID: user.ID, Token: token}).Error
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Logout удаляет токен
func (us *UserService) Logout(ctx context.Context, token string) error {
	return db.GetWriteDB(ctx).Where("token = ?", token).Delete(&models.UserToken{}).Error
}

// UserByToken возвращает пользователя по действующему токену
func (us *UserService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var userToken models.UserToken
	err := db.GetReadOnlyDB(ctx).Where("token = ?", token).First(&userToken).Error
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.GetReadOnlyDB(ctx).First(&user, userToken.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (us *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
