package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/queue"
	"narrative-assembly/middleware"
	"narrative-assembly/models"
	"narrative-assembly/utils"
)

type IndexReader interface {
	Lookup(term string) []models.CoOccurrenceEntry
}

// RebuildRequest overrides the configured build parameters. Zero fields keep the defaults.
type RebuildRequest struct {
	WindowSize int    `json:"windowSize"`
	MinCount   int    `json:"minCount"`
	TopN       int    `json:"topN"`
	Reason     string `json:"reason"`
}

// SetupIndexRoutes registers the index endpoints. enqueuer may be nil when
// Redis is not configured; rebuilds then answer 503.
func SetupIndexRoutes(api *gin.RouterGroup, index IndexReader, enqueuer queue.Enqueuer, defaults queue.RebuildIndexPayload) {
	group := api.Group("/index")
	group.GET("/terms/:term", handleIndexTerm(index))
	group.POST("/rebuild", handleRebuild(enqueuer, defaults))
}

func handleIndexTerm(index IndexReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.ToLower(strings.TrimSpace(c.Param("term")))

		related := index.Lookup(term)
		if related == nil {
			related = []models.CoOccurrenceEntry{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"term":    term,
			"related": related,
		})
	}
}

func handleRebuild(enqueuer queue.Enqueuer, defaults queue.RebuildIndexPayload) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enqueuer == nil {
			utils.RespondWithServiceUnavailable(c, "Index rebuilds require Redis")
			return
		}

		var req RebuildRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
				return
			}
		}

		payload := defaults
		if req.WindowSize > 0 {
			payload.WindowSize = req.WindowSize
		}
		if req.MinCount > 0 {
			payload.MinCount = req.MinCount
		}
		if req.TopN > 0 {
			payload.TopN = req.TopN
		}
		payload.Reason = req.Reason
		if payload.Reason == "" {
			payload.Reason = "api"
		}

		taskID, err := enqueuer.EnqueueRebuild(c.Request.Context(), payload)
		if errors.Is(err, queue.ErrAlreadyQueued) {
			utils.RespondWithConflict(c, "An index rebuild is already queued")
			return
		}
		if err != nil {
			logger.Error("Failed to enqueue index rebuild", "error", err, "request_id", middleware.GetRequestID(c))
			utils.RespondWithInternalError(c, "Failed to queue index rebuild", nil)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"success": true,
			"task_id": taskID,
			"status":  "pending",
		})
	}
}
