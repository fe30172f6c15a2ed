package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatch/miniapp-backend/internal/config"
	"github.com/bizmatch/miniapp-backend/internal/repository"
)

const (
	testBotToken  = "T0K3N"
	testJWTSecret = "handler-test-secret"
)

// signInitData produces init data signed the way the Telegram platform
// signs it, so the endpoint can be driven end to end.
func signInitData(botToken string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	stage := hmac.New(sha256.New, []byte("WebAppData"))
	stage.Write([]byte(botToken))
	mac := hmac.New(sha256.New, stage.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func postTelegramAuth(t *testing.T, h *AuthHandler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/telegram", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.TelegramAuth(c))
	return rec
}

func authHandlerWithMock(t *testing.T, botToken string) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: testJWTSecret, BotToken: botToken, TokenTTLDays: 30}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock
}

func TestTelegramAuth_MissingInitData(t *testing.T) {
	h, _ := authHandlerWithMock(t, testBotToken)
	rec := postTelegramAuth(t, h, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "initData is required")
}

func TestTelegramAuth_BotTokenNotConfigured(t *testing.T) {
	h, _ := authHandlerWithMock(t, "")
	rec := postTelegramAuth(t, h, map[string]string{"initData": "user=x&hash=y"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Bot token not configured", body["error"])
}

func TestTelegramAuth_InvalidSignature(t *testing.T) {
	h, _ := authHandlerWithMock(t, testBotToken)
	initData := signInitData("wrong-token", map[string]string{
		"user":      `{"id":42,"first_name":"Ann"}`,
		"auth_date": "1700000000",
	})
	rec := postTelegramAuth(t, h, map[string]string{"initData": initData})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Telegram data")
}

func TestTelegramAuth_SignedButNoUser(t *testing.T) {
	h, _ := authHandlerWithMock(t, testBotToken)
	initData := signInitData(testBotToken, map[string]string{"auth_date": "1700000000"})
	rec := postTelegramAuth(t, h, map[string]string{"initData": initData})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid user data")
}

func TestTelegramAuth_SuccessMintsToken(t *testing.T) {
	h, mock := authHandlerWithMock(t, testBotToken)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(42), "Ann", "", "ann42", "", false).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE telegram_id=").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "telegram_id", "first_name", "last_name", "username",
			"photo_url", "is_premium", "activity_description", "created_at", "updated_at",
		}).AddRow(7, 42, "Ann", "", "ann42", "", false, "", now, now))

	initData := signInitData(testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Ann","username":"ann42"}`,
		"auth_date": "1700000000",
	})
	rec := postTelegramAuth(t, h, map[string]string{"initData": initData})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			ID        uint64 `json:"id"`
			FirstName string `json:"first_name"`
			Username  string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint64(7), body.User.ID)
	assert.Equal(t, "Ann", body.User.FirstName)
	require.NotEmpty(t, body.Token)

	// The minted credential must round-trip: its claims carry exactly the
	// identifiers the principal had at mint time.
	parsed, err := jwt.Parse(body.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, float64(42), claims["telegram_id"])
	assert.Equal(t, "ann42", claims["username"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTelegramAuth_StoreUnavailable(t *testing.T) {
	h, mock := authHandlerWithMock(t, testBotToken)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(assert.AnError)

	initData := signInitData(testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Ann"}`,
		"auth_date": "1700000000",
	})
	rec := postTelegramAuth(t, h, map[string]string{"initData": initData})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
