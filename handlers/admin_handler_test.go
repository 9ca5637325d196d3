package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CampusVoice/campus-voice-backend/middleware"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *memStore {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &memStore{records: []*types.Feedback{
		{ID: "fb-3", Name: "Cara", Faculty: "Law", Category: types.CategorySecurity, Body: "Broken gate lock", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "fb-2", Name: "Bob", Faculty: "Engineering", Category: types.CategoryFacility, Body: "Flickering lights", CreatedAt: base.Add(time.Hour)},
		{ID: "fb-1", Name: "Alice", Faculty: "Engineering", Category: types.CategoryCafeteria, Body: "Cold food", CreatedAt: base},
	}}
}

func newAdminRouter(ms *memStore) *gin.Engine {
	h := NewAdminHandler(newTestService(ms))
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/v1/admin/feedback", h.ListFeedback)
	router.GET("/v1/admin/feedback/stats", h.FeedbackStats)
	router.DELETE("/v1/admin/feedback/:id", h.DeleteFeedback)
	return router
}

func getList(t *testing.T, router *gin.Engine, query string) types.FeedbackListResponse {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/feedback"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.FeedbackListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListFeedback(t *testing.T) {
	t.Run("default view is the whole collection newest first", func(t *testing.T) {
		resp := getList(t, newAdminRouter(seededStore()), "")

		require.Len(t, resp.Items, 3)
		assert.Equal(t, "fb-3", resp.Items[0].ID)
		assert.Equal(t, "fb-1", resp.Items[2].ID)
		assert.Equal(t, 3, resp.Counts.Total)
		assert.Equal(t, 3, resp.Counts.Filtered)
	})

	t.Run("category filter narrows the view but not the total", func(t *testing.T) {
		resp := getList(t, newAdminRouter(seededStore()), "?category=facility")

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "fb-2", resp.Items[0].ID)
		assert.Equal(t, 3, resp.Counts.Total)
		assert.Equal(t, 1, resp.Counts.Filtered)
	})

	t.Run("faculty and category filters combine", func(t *testing.T) {
		resp := getList(t, newAdminRouter(seededStore()), "?faculty=Engineering&category=cafeteria")

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "fb-1", resp.Items[0].ID)
	})

	t.Run("ascending sort reverses the order", func(t *testing.T) {
		resp := getList(t, newAdminRouter(seededStore()), "?sort=asc")

		require.Len(t, resp.Items, 3)
		assert.Equal(t, "fb-1", resp.Items[0].ID)
		assert.Equal(t, "fb-3", resp.Items[2].ID)
	})

	t.Run("unmatched filter yields an empty view with intact totals", func(t *testing.T) {
		resp := getList(t, newAdminRouter(seededStore()), "?category=parking")

		assert.Empty(t, resp.Items)
		assert.Equal(t, 3, resp.Counts.Total)
		assert.Equal(t, 0, resp.Counts.Filtered)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		ms := seededStore()
		ms.listErr = fmt.Errorf("connection refused")
		router := newAdminRouter(ms)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/feedback", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestFeedbackStats(t *testing.T) {
	router := newAdminRouter(seededStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/feedback/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var counts types.FeedbackCounts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 1, counts.PerCategory[types.CategoryFacility])
	assert.Equal(t, 1, counts.PerCategory[types.CategorySecurity])
}

func TestDeleteFeedback(t *testing.T) {
	t.Run("confirmed delete removes the record", func(t *testing.T) {
		ms := seededStore()
		router := newAdminRouter(ms)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/admin/feedback/fb-2?confirm=true", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, ms.records, 2)

		resp := getList(t, router, "")
		for _, fb := range resp.Items {
			assert.NotEqual(t, "fb-2", fb.ID)
		}
	})

	t.Run("unconfirmed delete is a 400 no-op", func(t *testing.T) {
		ms := seededStore()
		router := newAdminRouter(ms)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/admin/feedback/fb-2", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, ms.records, 3)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		router := newAdminRouter(seededStore())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/admin/feedback/fb-999?confirm=true", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete applied after a reload stays deleted", func(t *testing.T) {
		ms := seededStore()
		router := newAdminRouter(ms)

		// Warm the cache, reload, then delete.
		getList(t, router, "")
		getList(t, router, "?reload=true")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/admin/feedback/fb-1?confirm=true", nil))
		require.Equal(t, http.StatusOK, w.Code)

		resp := getList(t, router, "")
		require.Len(t, resp.Items, 2)
		for _, fb := range resp.Items {
			assert.NotEqual(t, "fb-1", fb.ID)
		}
	})
}
