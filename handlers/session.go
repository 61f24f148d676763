package handlers

import (
	"net/http"
	"time"

	"voicebook/models"
	"voicebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionTokenTTL bounds how long a single call can keep its token. Voice
// calls rarely run past a few minutes; 2 hours leaves slack for long holds.
const sessionTokenTTL = 2 * time.Hour

// CreateSessionHandler starts a new call session and returns its ID together
// with a bearer token scoped to it.
func (hb *HandlerBundle) CreateSessionHandler(c *gin.Context) {
	sess := hb.Sessions.Create()

	token, err := utils.GenerateSessionToken(sess.ID(), sessionTokenTTL)
	if err != nil {
		hb.Sessions.Destroy(sess.ID())
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue session token", err.Error())
		return
	}

	utils.GetLogger().Info("session created", zap.String("sessionID", sess.ID()))
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID(),
		"token":      token,
		"started_at": sess.StartedAt().Format(time.RFC3339),
	})
}

// ReportUsageHandler accumulates metered usage counters onto the session.
// The media pipeline posts deltas here as the call progresses.
func (hb *HandlerBundle) ReportUsageHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	var delta models.UsageCounters
	if err := c.ShouldBindJSON(&delta); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid usage payload", err.Error())
		return
	}

	sess, err := hb.Sessions.Get(sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", "")
		return
	}

	sess.AddUsage(delta)
	c.JSON(http.StatusOK, gin.H{"usage": sess.Usage()})
}
