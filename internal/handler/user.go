package handler

import (
    "context"      // request-scoped timeouts for DB calls
    "database/sql" // sentinel errors returned from repository
    "errors"       // errors.Is comparisons
    "net/http"     // HTTP status codes
    "time"         // timeout durations

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/bizmatch/miniapp-backend/internal/repository" // repository layer
)

// UserHandler serves the authenticated user's own profile. All methods
// assume the session guard has already populated the context.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	if u == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: u}
}

type activityReq struct {
	Description string `json:"description"`
}

// Profile handles GET /api/user/profile. It returns the stored profile of
// the caller identified by the session token.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Access token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": toUserPart(user)})
}

// UpdateActivity handles PUT /api/user/activity. It overwrites the caller's
// free-text activity description; an empty string clears it.
func (h *UserHandler) UpdateActivity(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Access token required"})
	}

	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateActivity(ctx, userID, req.Description); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Activity description updated"})
}
