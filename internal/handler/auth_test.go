package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/measurement-service/internal/config"
	"github.com/vitalog/measurement-service/internal/repository"
	"github.com/vitalog/measurement-service/internal/utils"
)

func authTestConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   5,
		RefreshTTLDays: 7,
		BcryptCost:     4, // minimum cost keeps the test fast
	}
}

func jsonContext(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterIssuesTokens(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("kody", "kody@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewAuthHandler(authTestConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	c, rec := jsonContext(echo.New(), "/v1/auth/register",
		`{"username":"Kody","email":"kody@example.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		User struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp.User.ID)
	assert.Equal(t, "kody", resp.User.Username, "usernames are normalized to lower case")
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := utils.HashPassword("correct", 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("kody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(uint64(7), "kody", "kody@example.com", hash, now, now))

	h := NewAuthHandler(authTestConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	c, rec := jsonContext(echo.New(), "/v1/auth/login",
		`{"email":"kody@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}))

	h := NewAuthHandler(authTestConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	c, rec := jsonContext(echo.New(), "/v1/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
