package handler

import (
	"net/http"
	"time"

	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ReviewInput defines the structure for creating a review.
type ReviewInput struct {
	RecipientID int    `json:"recipient_id" binding:"required"`
	ReviewTitle string `json:"review_title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Rating      *int   `json:"rating" binding:"required"`
}

// ReviewUpdateInput defines the structure for editing a review.
type ReviewUpdateInput struct {
	ReviewTitle string `json:"review_title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Rating      *int   `json:"rating" binding:"required"`
}

// ReviewResponse defines the structure returned for a stored review.
type ReviewResponse struct {
	ID                uint       `json:"review_id"`
	ReviewerID        uint       `json:"reviewer_id"`
	ReviewerUsername  string     `json:"reviewer_username"`
	RecipientID       uint       `json:"recipient_id"`
	RecipientUsername string     `json:"recipient_username"`
	ReviewTitle       string     `json:"review_title"`
	Content           string     `json:"content"`
	Rating            int        `json:"rating"`
	DatePosted        time.Time  `json:"date_posted"`
	LastUpdated       *time.Time `json:"last_updated"`
}

func newReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:                r.ID,
		ReviewerID:        r.ReviewerID,
		ReviewerUsername:  r.ReviewerUsername,
		RecipientID:       r.RecipientID,
		RecipientUsername: r.RecipientUsername,
		ReviewTitle:       r.ReviewTitle,
		Content:           r.Content,
		Rating:            r.Rating,
		DatePosted:        r.DatePosted,
		LastUpdated:       r.LastUpdated,
	}
}

// endregion

// GetMyReviews godoc
// @Summary      List reviews written by the authenticated user
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ReviewResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /my-reviews [get]
func GetMyReviews(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var reviews []models.Review
	err := database.DB.
		Where("reviewer_id = ?", viewerID).
		Order("date_posted DESC").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, newReviewResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// GetReviews godoc
// @Summary      List reviews for a recipient
// @Tags         reviews
// @Produce      json
// @Param        recipient_id query int true "Recipient User ID"
// @Success      200  {array}   ReviewResponse
// @Failure      400  {object}  ErrorResponse "Missing recipient_id"
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews [get]
func GetReviews(c *gin.Context) {
	recipientID := c.Query("recipient_id")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing recipient_id in query parameters"})
		return
	}

	var reviews []models.Review
	err := database.DB.
		Where("recipient_id = ?", recipientID).
		Order("date_posted DESC").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, newReviewResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateReview godoc
// @Summary      Create a review
// @Description  Creates a review about another user. Usernames are denormalized at creation time.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ReviewInput true "Review Info"
// @Success      201  {object}  map[string]interface{} "{"message": "Review created successfully", "review_id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var users []models.User
	if err := database.DB.Where("id IN ?", []uint{viewerID.(uint), uint(input.RecipientID)}).Find(&users).Error; err != nil || len(users) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User(s) not found"})
		return
	}

	var reviewer, recipient models.User
	for _, u := range users {
		if u.ID == viewerID.(uint) {
			reviewer = u
		} else {
			recipient = u
		}
	}

	review := models.Review{
		ReviewerID:        reviewer.ID,
		ReviewerUsername:  reviewer.Name,
		RecipientID:       recipient.ID,
		RecipientUsername: recipient.Name,
		ReviewTitle:       input.ReviewTitle,
		Content:           input.Content,
		Rating:            *input.Rating,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review created successfully", "review_id": review.ID})
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Edits a review. Only the original reviewer may edit; the edit re-stamps last_updated.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int               true "Review ID"
// @Param        input body ReviewUpdateInput true "Review Info"
// @Success      200  {object}  map[string]interface{} "{"message": "Review updated successfully", "last_updated": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Unauthorized or review not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews/{id} [put]
func UpdateReview(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	reviewID := c.Param("id")

	var input ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	now := time.Now()
	result := database.DB.Model(&models.Review{}).
		Where("id = ? AND reviewer_id = ?", reviewID, viewerID).
		Updates(map[string]interface{}{
			"review_title": input.ReviewTitle,
			"content":      input.Content,
			"rating":       *input.Rating,
			"last_updated": now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized or review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "last_updated": now})
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Deletes a review. Only the original reviewer may delete.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      200  {object}  map[string]string "{"message": "Review deleted successfully"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Unauthorized or review not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	reviewID := c.Param("id")

	result := database.DB.
		Where("id = ? AND reviewer_id = ?", reviewID, viewerID).
		Delete(&models.Review{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized or review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
