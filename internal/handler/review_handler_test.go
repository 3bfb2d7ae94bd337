package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewRouter(userID uint) *gin.Engine {
	router := testRouter(userID)
	router.GET("/api/my-reviews", GetMyReviews)
	reviews := router.Group("/api/reviews")
	{
		reviews.GET("", GetReviews)
		reviews.POST("", CreateReview)
		reviews.PUT("/:id", UpdateReview)
		reviews.DELETE("/:id", DeleteReview)
	}
	return router
}

func TestCreateReview(t *testing.T) {
	mock := setupMockDB(t)
	router := newReviewRouter(1)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Alice").
			AddRow(2, "Bob"))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	payload := bytes.NewBufferString(`{"recipient_id": 2, "review_title": "Great teacher", "content": "Learned a lot", "rating": 5}`)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", payload)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["review_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_MissingFields(t *testing.T) {
	setupMockDB(t)
	router := newReviewRouter(1)

	payload := bytes.NewBufferString(`{"recipient_id": 2, "review_title": "No content"}`)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", payload)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required fields")
}

func TestUpdateReview_OwnerOnly(t *testing.T) {
	t.Run("owner updates and last_updated is stamped", func(t *testing.T) {
		mock := setupMockDB(t)
		router := newReviewRouter(1)

		mock.ExpectExec(`UPDATE "reviews" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		payload := bytes.NewBufferString(`{"review_title": "Updated", "content": "Still great", "rating": 4}`)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/reviews/10", payload)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body["last_updated"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mock := setupMockDB(t)
		router := newReviewRouter(99)

		mock.ExpectExec(`UPDATE "reviews" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		payload := bytes.NewBufferString(`{"review_title": "Hijack", "content": "Nope", "rating": 1}`)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/reviews/10", payload)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Unauthorized or review not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteReview_OwnerOnly(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		mock := setupMockDB(t)
		router := newReviewRouter(1)

		mock.ExpectExec(`DELETE FROM "reviews"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/reviews/10", nil)
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mock := setupMockDB(t)
		router := newReviewRouter(99)

		mock.ExpectExec(`DELETE FROM "reviews"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/reviews/10", nil)
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetReviews_RequiresRecipient(t *testing.T) {
	setupMockDB(t)
	router := newReviewRouter(1)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing recipient_id")
}

func TestGetMyReviews(t *testing.T) {
	mock := setupMockDB(t)
	router := newReviewRouter(1)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE reviewer_id = \$1 ORDER BY date_posted DESC`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "review_title", "rating"}).
			AddRow(10, 1, "Great teacher", 5))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my-reviews", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body []ReviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Great teacher", body[0].ReviewTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
