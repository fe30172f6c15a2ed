package handler

import (
    "context"  // provides context with cancellation for DB calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/bizmatch/miniapp-backend/internal/config"     // app configuration
    "github.com/bizmatch/miniapp-backend/internal/model"      // database models
    "github.com/bizmatch/miniapp-backend/internal/repository" // DB repositories
    "github.com/bizmatch/miniapp-backend/internal/telegram"   // init data verification
    "github.com/bizmatch/miniapp-backend/internal/utils"      // session token issuing
)

// AuthHandler bundles dependencies for the Telegram auth endpoint.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type telegramAuthReq struct {
	InitData string `json:"initData"`
}

type userPart struct {
	ID                  uint64 `json:"id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Username            string `json:"username"`
	PhotoURL            string `json:"photo_url"`
	IsPremium           bool   `json:"is_premium"`
	ActivityDescription string `json:"activity_description"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Username:            u.Username,
		PhotoURL:            u.PhotoURL,
		IsPremium:           u.IsPremium,
		ActivityDescription: u.ActivityDescription,
	}
}

// TelegramAuth: verify init data, upsert the user, mint a session token.
// Error messages stay generic so a caller cannot tell which internal check
// rejected the login.
func (h *AuthHandler) TelegramAuth(c echo.Context) error {
	var req telegramAuthReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "initData is required"})
	}
	if strings.TrimSpace(req.InitData) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "initData is required"})
	}

	if h.Cfg.BotToken == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Bot token not configured"})
	}

	if !telegram.VerifyInitData(req.InitData, h.Cfg.BotToken) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid Telegram data"})
	}

	tgUser, err := telegram.ExtractUser(req.InitData)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid user data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Upsert(ctx, tgUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, user.ID, user.TelegramID, user.Username, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    toUserPart(user),
		"token":   tok.Token,
	})
}
