package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"narrative-assembly/internal/logger"
	"narrative-assembly/middleware"
	"narrative-assembly/models"
	"narrative-assembly/services"
	"narrative-assembly/utils"
)

const emptyQueryMessage = "Query is required and must be a non-empty string"

// Searcher is the part of services.SearchService the handlers need.
type Searcher interface {
	Search(ctx context.Context, query string, maxClips int) (*models.SearchResult, error)
	Expand(ctx context.Context, query string) ([]models.ExpandedKeyword, error)
}

func SetupSearchRoutes(api *gin.RouterGroup, searcher Searcher, exporter *services.ExportService, defaultMaxClips int) {
	api.POST("/search", handleSearch(searcher, defaultMaxClips))
	api.POST("/search/export", handleExport(searcher, exporter, defaultMaxClips))
	api.GET("/expand", handleExpand(searcher))
}

// bindSearch decodes the request body and runs the search, writing the error
// response itself. A nil result means the response was already sent.
func bindSearch(c *gin.Context, searcher Searcher, defaultMaxClips int, timeout func(context.Context) (context.Context, context.CancelFunc)) *models.SearchResult {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithBadRequest(c, emptyQueryMessage, gin.H{"error": err.Error()})
		return nil
	}

	ctx, cancel := timeout(c.Request.Context())
	defer cancel()

	result, err := searcher.Search(ctx, req.Query, services.MaxClipsOrDefault(req.MaxClips, defaultMaxClips))
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			utils.RespondWithBadRequest(c, emptyQueryMessage, nil)
			return nil
		}
		logger.Error("Search failed", "error", err, "request_id", middleware.GetRequestID(c))
		utils.RespondWithInternalError(c, "Internal server error during search", nil)
		return nil
	}
	return result
}

func handleSearch(searcher Searcher, defaultMaxClips int) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := bindSearch(c, searcher, defaultMaxClips, utils.WithTimeout)
		if result == nil {
			return
		}
		c.JSON(http.StatusOK, models.SearchResponse{Success: true, Data: *result})
	}
}

func handleExport(searcher Searcher, exporter *services.ExportService, defaultMaxClips int) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", services.ExportFormatXLSX)
		if format != services.ExportFormatXLSX && format != services.ExportFormatJSON {
			utils.RespondWithBadRequest(c, "format must be xlsx or json", gin.H{"format": format})
			return
		}

		result := bindSearch(c, searcher, defaultMaxClips, utils.WithLongTimeout)
		if result == nil {
			return
		}

		data := exporter.ConvertToExportFormat(result, format)
		body, contentType, err := exporter.Export(data)
		if err != nil {
			logger.Error("Export failed", "error", err, "format", format)
			utils.RespondWithInternalError(c, "Failed to generate export", nil)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exporter.Filename(data)))
		c.Data(http.StatusOK, contentType, body)
	}
}

func handleExpand(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		keywords, err := searcher.Expand(ctx, query)
		if err != nil {
			utils.RespondWithBadRequest(c, emptyQueryMessage, nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"query":            query,
			"expandedKeywords": keywords,
		})
	}
}
