package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatch/miniapp-backend/internal/repository"
)

func requestHandlerWithMock(t *testing.T) (*RequestHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRequestHandler(repository.NewRequestRepo(db)), mock
}

func TestRequestList(t *testing.T) {
	h, mock := requestHandlerWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM requests ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "description", "category", "budget",
			"location", "contact_info", "is_matched", "created_at",
		}).
			AddRow(2, 7, "Fix my sink", "leaking", "plumbing", "50 USD", "Berlin", "@ann42", false, now).
			AddRow(1, 8, "Logo design", "simple logo", "design", "200 USD", "remote", "@bob", true, now.Add(-time.Hour)))

	c, rec := authedContext(t, http.MethodGet, "/api/requests", "", 7)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool `json:"success"`
		Requests []struct {
			ID        uint64 `json:"id"`
			Title     string `json:"title"`
			IsMatched bool   `json:"is_matched"`
		} `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Requests, 2)
	assert.Equal(t, "Fix my sink", body.Requests[0].Title)
	assert.True(t, body.Requests[1].IsMatched)
}

func TestRequestList_EmptyBoard(t *testing.T) {
	h, mock := requestHandlerWithMock(t)
	mock.ExpectQuery("SELECT (.+) FROM requests ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "description", "category", "budget",
			"location", "contact_info", "is_matched", "created_at",
		}))

	c, rec := authedContext(t, http.MethodGet, "/api/requests", "", 7)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	// An empty board serializes as [], not null.
	assert.Contains(t, rec.Body.String(), `"requests":[]`)
}

func TestRequestCreate_NoClaims(t *testing.T) {
	h, _ := requestHandlerWithMock(t)
	c, rec := authedContext(t, http.MethodPost, "/api/requests", `{"title":"x"}`, 0)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access token required")
}

func TestRequestMatch_InvalidID(t *testing.T) {
	h, _ := requestHandlerWithMock(t)
	c, rec := authedContext(t, http.MethodPut, "/api/requests/abc/match", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Match(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestMatch_NotFound(t *testing.T) {
	h, mock := requestHandlerWithMock(t)
	mock.ExpectExec("UPDATE requests SET is_matched=TRUE").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(false))

	c, rec := authedContext(t, http.MethodPut, "/api/requests/99/match", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Match(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request not found")
}
