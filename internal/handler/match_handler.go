package handler

import (
	"errors"
	"net/http"

	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/hub"
	"github.com/d-lino-kee/skill-swap-platform/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// region --- DTOs ---

// MatchRequestInput defines the structure for sending a skill swap request.
type MatchRequestInput struct {
	RecipientID      uint   `json:"recipient_id" binding:"required"`
	SenderSkill      string `json:"sender_skill" binding:"required"`
	RequestedSkill   string `json:"requested_skill" binding:"required"`
	TimeAvailability string `json:"time_availability"`
}

// PendingRequestResponse is one received request awaiting an answer.
type PendingRequestResponse struct {
	ID               string `json:"id"`
	SenderName       string `json:"sender_name"`
	SenderSkill      string `json:"sender_skill"`
	RequestedSkill   string `json:"requested_skill"`
	TimeAvailability string `json:"time_availability"`
	Status           string `json:"status"`
	SenderEmail      string `json:"sender_email"`
}

// AcceptedMatchResponse is one successful match visible to a participant.
type AcceptedMatchResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Skill             string `json:"skill"`
	Location          string `json:"location"`
	TimeAvailability  string `json:"time_availability"`
	SessionsCompleted int    `json:"sessions_completed"`
	Status            string `json:"status"`
	Email             string `json:"email"`
}

// MatchListResponse groups a user's pending requests and accepted matches.
type MatchListResponse struct {
	Pending  []PendingRequestResponse `json:"pending"`
	Accepted []AcceptedMatchResponse  `json:"accepted"`
}

// ProgressInput defines the structure for a progress update.
type ProgressInput struct {
	SessionsCompleted *int `json:"sessions_completed" binding:"required"`
}

const msgAlreadyProcessed = "Request not found or already processed"

// endregion

// GetMatches godoc
// @Summary      List matches for a user
// @Description  Returns pending requests where the user is the recipient and accepted matches where the user is either party, deduplicated by counterpart name.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int true "User ID"
// @Success      200  {object}  MatchListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /matches [get]
func GetMatches(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}

	var pending []PendingRequestResponse
	err := database.DB.Model(&models.MatchRequest{}).
		Select("match_requests.id, match_requests.sender_name, match_requests.sender_skill, match_requests.requested_skill, match_requests.time_availability, match_requests.status, users.email AS sender_email").
		Joins("JOIN users ON users.id = match_requests.sender_id").
		Where("match_requests.recipient_id = ? AND match_requests.status = ?", userID, models.RequestPending).
		Scan(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	requestIDs := database.DB.Model(&models.MatchRequest{}).
		Select("id").
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?", userID, userID, models.RequestAccepted)

	var accepted []AcceptedMatchResponse
	err = database.DB.Model(&models.SuccessfulMatch{}).
		Select("successful_matches.id, successful_matches.name, successful_matches.skill, successful_matches.location, successful_matches.time_availability, successful_matches.sessions_completed, successful_matches.status, users.email").
		Joins("JOIN users ON users.name = successful_matches.name").
		Where("successful_matches.id IN (?)", requestIDs).
		Scan(&accepted).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// A user sees at most one accepted row per counterpart name, even when
	// several historical requests resolved to the same person.
	seen := make(map[string]bool, len(accepted))
	deduped := make([]AcceptedMatchResponse, 0, len(accepted))
	for _, m := range accepted {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		deduped = append(deduped, m)
	}

	if pending == nil {
		pending = []PendingRequestResponse{}
	}

	c.JSON(http.StatusOK, MatchListResponse{Pending: pending, Accepted: deduped})
}

// SendMatchRequest godoc
// @Summary      Send a skill swap request
// @Description  Creates a new request in the pending state. Participant names and skills are snapshotted from the directory.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MatchRequestInput true "Request Info"
// @Success      201  {object}  map[string]string "{"message": "Request sent successfully!"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/request [post]
func SendMatchRequest(c *gin.Context) {
	senderID, _ := c.Get("userID")

	var input MatchRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sender models.User
	if err := database.DB.First(&sender, senderID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, input.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	request := models.MatchRequest{
		SenderID:         sender.ID,
		RecipientID:      recipient.ID,
		SenderName:       sender.Name,
		RecipientName:    recipient.Name,
		SenderSkill:      input.SenderSkill,
		RequestedSkill:   input.RequestedSkill,
		TimeAvailability: input.TimeAvailability,
		Status:           models.RequestPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating skill swap request"})
		return
	}

	hub.GlobalHub.Notify(recipient.ID, hub.Event{
		Type:    hub.EventMatchRequest,
		Payload: gin.H{"request_id": request.ID, "sender_name": sender.Name, "sender_skill": input.SenderSkill},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Request sent successfully!", "request_id": request.ID})
}

// AcceptRequest godoc
// @Summary      Accept a skill swap request
// @Description  Transitions a pending request to accepted and records the successful match. Creation of the match record is idempotent per (name, skill) pair; a repeat acceptance only flips the request status and flags alreadyMatched.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  map[string]interface{} "{"message": "...", "email": "...", "alreadyMatched": true}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already processed"
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/accept/{id} [post]
func AcceptRequest(c *gin.Context) {
	id := c.Param("id")

	var request models.MatchRequest
	var senderEmail string
	alreadyMatched := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the pending row so concurrent accepts of the same request
		// serialize; the loser finds no pending row.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, models.RequestPending).
			First(&request).Error; err != nil {
			return err
		}

		var sender models.User
		if err := tx.First(&sender, request.SenderID).Error; err != nil {
			return err
		}
		senderEmail = sender.Email

		var existing models.SuccessfulMatch
		err := tx.Where("name = ? AND skill = ?", request.SenderName, request.SenderSkill).
			First(&existing).Error
		switch {
		case err == nil:
			// A match for this (name, skill) pair already exists; only the
			// request status changes.
			alreadyMatched = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			match := models.SuccessfulMatch{
				ID:               request.ID,
				Name:             request.SenderName,
				Skill:            request.SenderSkill,
				Location:         "Online",
				TimeAvailability: request.TimeAvailability,
				Status:           models.MatchActive,
			}
			if err := tx.Create(&match).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.MatchRequest{}).
			Where("id = ?", id).
			Update("status", models.RequestAccepted).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgAlreadyProcessed})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error accepting request"})
		return
	}

	hub.GlobalHub.Notify(request.SenderID, hub.Event{
		Type:    hub.EventMatchAccepted,
		Payload: gin.H{"request_id": request.ID, "recipient_name": request.RecipientName},
	})

	response := gin.H{
		"message": "Skill swap request accepted successfully!",
		"email":   senderEmail,
	}
	if alreadyMatched {
		response["alreadyMatched"] = true
	}
	c.JSON(http.StatusOK, response)
}

// RejectRequest godoc
// @Summary      Reject a skill swap request
// @Description  Transitions a pending request to declined. Any pending invite for the same pair is marked rejected on a best-effort basis.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Skill swap request rejected successfully!"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already processed"
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/reject/{id} [post]
func RejectRequest(c *gin.Context) {
	id := c.Param("id")

	var request models.MatchRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, models.RequestPending).
			First(&request).Error; err != nil {
			return err
		}
		return tx.Model(&models.MatchRequest{}).
			Where("id = ?", id).
			Update("status", models.RequestDeclined).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgAlreadyProcessed})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error rejecting request"})
		return
	}

	// Best-effort: sync any pending invite for the same pair. Runs after the
	// commit because its failure must never fail the rejection.
	database.DB.Model(&models.Invite{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", request.SenderID, request.RecipientID, models.InvitePending).
		Update("status", models.InviteRejected)

	hub.GlobalHub.Notify(request.SenderID, hub.Event{
		Type:    hub.EventMatchRejected,
		Payload: gin.H{"request_id": request.ID, "recipient_name": request.RecipientName},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Skill swap request rejected successfully!"})
}

// WithdrawRequest godoc
// @Summary      Withdraw a sent request
// @Description  Transitions a pending request to withdrawn. Callable by the sender.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Skill swap request withdrawn successfully!"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already processed"
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/withdraw/{id} [post]
func WithdrawRequest(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Model(&models.MatchRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Update("status", models.RequestWithdrawn)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error withdrawing request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": msgAlreadyProcessed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill swap request withdrawn successfully!"})
}

// UpdateProgress godoc
// @Summary      Update skill swap progress
// @Description  Overwrites the sessions-completed counter of an active match. The value is stored verbatim.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Successful Match ID"
// @Param        input body  ProgressInput true  "Progress Info"
// @Success      200  {object}  map[string]string "{"message": "Progress updated successfully!"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Match not found or no longer active"
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/progress/{id} [put]
func UpdateProgress(c *gin.Context) {
	id := c.Param("id")

	var input ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessions_completed"})
		return
	}

	result := database.DB.Model(&models.SuccessfulMatch{}).
		Where("id = ? AND status = ?", id, models.MatchActive).
		Update("sessions_completed", *input.SessionsCompleted)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating progress"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Match not found or no longer active"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated successfully!"})
}
