package handler

import (
    "context"  // request-scoped timeouts for DB calls
    "errors"   // errors.Is comparisons
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "time"     // timestamps and timeouts

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/bizmatch/miniapp-backend/internal/model"      // database models
    "github.com/bizmatch/miniapp-backend/internal/queue"      // domain event payloads
    "github.com/bizmatch/miniapp-backend/internal/repository" // repository layer
    queue_publisher "github.com/bizmatch/miniapp-backend/internal/service"
)

// RequestHandler serves the shared customer-request board: every
// authenticated user sees the full list, may post new requests and may mark
// any request as matched. Domain events are published to the broker after
// each write; publish failures are logged by the publisher and deliberately
// ignored so the HTTP response never depends on broker availability.
type RequestHandler struct {
	Requests *repository.RequestRepo
}

func NewRequestHandler(r *repository.RequestRepo) *RequestHandler {
	if r == nil {
		panic("nil repository passed to NewRequestHandler")
	}
	return &RequestHandler{Requests: r}
}

// ----- DTOs -----

type createRequestReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Budget      string `json:"budget"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
}

type requestPart struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Budget      string    `json:"budget"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contact_info"`
	IsMatched   bool      `json:"is_matched"`
	CreatedAt   time.Time `json:"created_at"`
}

// List handles GET /api/requests, newest requests first.
func (h *RequestHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Requests.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	out := make([]requestPart, 0, len(items))
	for _, q := range items {
		out = append(out, requestPart{
			ID:          q.ID,
			UserID:      q.UserID,
			Title:       q.Title,
			Description: q.Description,
			Category:    q.Category,
			Budget:      q.Budget,
			Location:    q.Location,
			ContactInfo: q.ContactInfo,
			IsMatched:   q.IsMatched,
			CreatedAt:   q.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "requests": out})
}

// Create handles POST /api/requests. The new request is owned by the caller.
func (h *RequestHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Access token required"})
	}

	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Requests.Create(ctx, userID, model.Request{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	// Best effort: the request is already durable, the event is advisory.
	_ = queue_publisher.PublishRequestEvent(ctx, queue.RequestEvent{
		Event:      queue.EventRequestCreated,
		RequestID:  id,
		UserID:     userID,
		Title:      req.Title,
		Category:   req.Category,
		Budget:     req.Budget,
		Location:   req.Location,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "requestId": id, "message": "Request added successfully"})
}

// Match handles PUT /api/requests/:id/match.
func (h *RequestHandler) Match(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Requests.MarkMatched(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
	}

	_ = queue_publisher.PublishRequestEvent(ctx, queue.RequestEvent{
		Event:      queue.EventRequestMatched,
		RequestID:  id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Request marked as matched"})
}
