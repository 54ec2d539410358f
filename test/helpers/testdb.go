package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"juakali_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	// Если в PasswordHash лежит сырой пароль - хешируем
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: password, // Сырой пароль, CreateUser захеширует
		Role:         role,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginClient создает клиента с уникальным email
func CreateAndLoginClient(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("client_%d@test.co.ke", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Client", email, "password123", models.UserRoleClient)
}

// CreateAndLoginArtisan создает мастера с профилем и уникальным email
func CreateAndLoginArtisan(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User, *models.ArtisanProfile) {
	email := fmt.Sprintf("artisan_%d@test.co.ke", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, tx, "Test Artisan", email, "password123", models.UserRoleArtisan)

	profile := &models.ArtisanProfile{
		UserID:          user.ID,
		Bio:             "Experienced fundi",
		YearsExperience: 5,
	}
	result := tx.Create(profile)
	assert.NoError(t, result.Error, "Не удалось создать профиль мастера")

	return token, user, profile
}
