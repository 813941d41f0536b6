package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"narrative-assembly/internal/corpus"
)

// IndexStats reports how many terms the loaded index holds.
type IndexStats interface {
	Len() int
}

func SetupHealthRoutes(router *gin.Engine, store *corpus.Store, index IndexStats) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Ready once a corpus has been loaded.
	router.GET("/ready", func(c *gin.Context) {
		snap := store.Snapshot()
		if snap == nil || len(snap.Transcripts) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"transcripts": len(snap.Transcripts),
			"segments":    snap.SegmentCount(),
			"index_terms": index.Len(),
			"loaded_at":   snap.LoadedAt,
		})
	})
}
