package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"narrative-assembly/models"
	"narrative-assembly/utils"
)

type TopicSource interface {
	Topics(ctx context.Context) ([]models.TrendingTopic, bool)
}

func SetupTopicRoutes(api *gin.RouterGroup, topics TopicSource) {
	// Never fails: the source falls back to curated topics.
	api.GET("/trending-topics", func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		list, cached := topics.Topics(ctx)
		c.JSON(http.StatusOK, models.TrendingTopicsResponse{
			Success: true,
			Topics:  list,
			Cached:  cached,
		})
	})
}
