package handler

import (
	"log"
	"net/http"

	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/hub"
	"github.com/d-lino-kee/skill-swap-platform/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// InviteInput defines the structure for sending an invite.
type InviteInput struct {
	ReceiverID uint `json:"receiver_id" binding:"required"`
}

// PendingInviteResponse is one invite awaiting an answer, joined with the
// sender's profile.
type PendingInviteResponse struct {
	ID               uint   `json:"id"`
	SenderName       string `json:"sender_name"`
	SenderSkill      string `json:"sender_skill"`
	Status           string `json:"status"`
	TimeAvailability string `json:"time_availability"`
}

// endregion

// SendInvite godoc
// @Summary      Send an invite
// @Description  Records a pending invite and, on a best-effort basis, spawns a matching skill swap request populated from the directory. The invite still succeeds if the request cannot be created.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body InviteInput true "Invite Info"
// @Success      201  {object}  map[string]interface{} "{"message": "Invite sent successfully!", "inviteId": 1, "requestId": "..."}"
// @Failure      400  {object}  ErrorResponse "Sender or Receiver does not exist"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invites/send [post]
func SendInvite(c *gin.Context) {
	senderID, _ := c.Get("userID")

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sender or receiver ID"})
		return
	}

	if input.ReceiverID == senderID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot invite yourself"})
		return
	}

	var users []models.User
	if err := database.DB.Where("id IN ?", []uint{senderID.(uint), input.ReceiverID}).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if len(users) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sender or Receiver does not exist"})
		return
	}

	var sender, receiver models.User
	for _, u := range users {
		if u.ID == senderID.(uint) {
			sender = u
		} else {
			receiver = u
		}
	}

	invite := models.Invite{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     models.InvitePending,
	}
	if err := database.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send invite"})
		return
	}

	hub.GlobalHub.Notify(receiver.ID, hub.Event{
		Type:    hub.EventInvite,
		Payload: gin.H{"invite_id": invite.ID, "sender_name": sender.Name},
	})

	// Spawn the formal request with best-effort profile data. The two records
	// are related only by the sender/receiver pair, not a foreign key.
	request := models.MatchRequest{
		SenderID:         sender.ID,
		RecipientID:      receiver.ID,
		SenderName:       nameOrUnknown(sender.Name),
		RecipientName:    nameOrUnknown(receiver.Name),
		SenderSkill:      skillOrDefault(sender.Skill),
		RequestedSkill:   skillOrDefault(receiver.Skill),
		TimeAvailability: availabilityOrDefault(sender.TimeAvailability),
		Status:           models.RequestPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("invite %d: failed to create skill swap request: %v", invite.ID, err)
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Invite sent successfully, but request creation failed",
			"inviteId": invite.ID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Invite sent successfully!",
		"inviteId":  invite.ID,
		"requestId": request.ID,
	})
}

// GetPendingInvites godoc
// @Summary      List pending invites for a user
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {array}   PendingInviteResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invites/pending/{userId} [get]
func GetPendingInvites(c *gin.Context) {
	userID := c.Param("userId")

	var invites []PendingInviteResponse
	err := database.DB.Model(&models.Invite{}).
		Select("invites.id, users.name AS sender_name, users.skill AS sender_skill, invites.status, users.time_availability").
		Joins("JOIN users ON users.id = invites.sender_id").
		Where("invites.receiver_id = ? AND invites.status = ?", userID, models.InvitePending).
		Scan(&invites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if invites == nil {
		invites = []PendingInviteResponse{}
	}
	c.JSON(http.StatusOK, invites)
}

// AcceptInvite godoc
// @Summary      Accept an invite
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invite ID"
// @Success      200  {object}  map[string]string "{"message": "Invite accepted successfully!"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invites/accept/{id} [post]
func AcceptInvite(c *gin.Context) {
	updateInviteStatus(c, models.InviteAccepted, "Invite accepted successfully!")
}

// RejectInvite godoc
// @Summary      Reject an invite
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invite ID"
// @Success      200  {object}  map[string]string "{"message": "Invite rejected successfully!"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invites/reject/{id} [post]
func RejectInvite(c *gin.Context) {
	updateInviteStatus(c, models.InviteRejected, "Invite rejected successfully!")
}

func updateInviteStatus(c *gin.Context, status models.InviteStatus, message string) {
	id := c.Param("id")

	result := database.DB.Model(&models.Invite{}).
		Where("id = ? AND status = ?", id, models.InvitePending).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found or already processed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

func skillOrDefault(skill string) string {
	if skill == "" {
		return "Not specified"
	}
	return skill
}

func availabilityOrDefault(availability string) string {
	if availability == "" {
		return "Flexible"
	}
	return availability
}
