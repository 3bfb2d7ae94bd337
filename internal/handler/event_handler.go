package handler

import (
	"io"

	"github.com/d-lino-kee/skill-swap-platform/internal/hub"

	"github.com/gin-gonic/gin"
)

// StreamEvents godoc
// @Summary      Stream notifications
// @Description  Opens a server-sent-events stream delivering match and invite notifications for the authenticated user.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  ErrorResponse
// @Router       /events [get]
func StreamEvents(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	userID := viewerID.(uint)

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(userID, client)
	defer hub.GlobalHub.Unsubscribe(userID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
