package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

const (
	ExportFormatJSON = "json"
	ExportFormatXLSX = "xlsx"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ClipExport is the document written for a search result.
type ClipExport struct {
	ExportInfo ExportInfo               `json:"export_info"`
	Keywords   []models.ExpandedKeyword `json:"keywords"`
	Clips      []ClipRow                `json:"clips"`
}

type ExportInfo struct {
	ExportDate   time.Time `json:"export_date"`
	Query        string    `json:"query"`
	TotalClips   int       `json:"total_clips"`
	SearchTimeMs int64     `json:"search_time_ms"`
	Format       string    `json:"format"`
}

// ClipRow flattens a clip for spreadsheets and edit lists.
type ClipRow struct {
	Rank            int     `json:"rank"`
	VideoID         string  `json:"video_id"`
	VideoTitle      string  `json:"video_title"`
	PublishedAt     string  `json:"published_at"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	Timecode        string  `json:"timecode"`
	Score           float64 `json:"score"`
	MatchedKeywords string  `json:"matched_keywords"`
	Text            string  `json:"text"`
	URL             string  `json:"url"`
}

type ExportService struct {
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// ConvertToExportFormat builds the export document for a search result.
func (es *ExportService) ConvertToExportFormat(result *models.SearchResult, format string) *ClipExport {
	rows := make([]ClipRow, 0, len(result.Clips))
	for i, clip := range result.Clips {
		rows = append(rows, ClipRow{
			Rank:            i + 1,
			VideoID:         clip.VideoID,
			VideoTitle:      clip.VideoTitle,
			PublishedAt:     clip.PublishedAt,
			StartTime:       clip.StartTime,
			EndTime:         clip.EndTime,
			Timecode:        Timecode(clip.StartTime) + " - " + Timecode(clip.EndTime),
			Score:           clip.Score,
			MatchedKeywords: strings.Join(clip.MatchedKeywords, ", "),
			Text:            clip.Text,
			URL:             ClipURL(clip),
		})
	}

	return &ClipExport{
		ExportInfo: ExportInfo{
			ExportDate:   es.now().UTC(),
			Query:        result.Query,
			TotalClips:   len(rows),
			SearchTimeMs: result.SearchTimeMs,
			Format:       format,
		},
		Keywords: result.ExpandedKeywords,
		Clips:    rows,
	}
}

// Export renders the document in the requested format and returns the body
// with its content type.
func (es *ExportService) Export(data *ClipExport) ([]byte, string, error) {
	switch data.ExportInfo.Format {
	case ExportFormatJSON:
		body, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return body, "application/json", nil
	case ExportFormatXLSX:
		body, err := es.exportExcel(data)
		if err != nil {
			return nil, "", err
		}
		return body, ContentTypeXLSX, nil
	}
	return nil, "", fmt.Errorf("unsupported export format %q", data.ExportInfo.Format)
}

// Filename is the attachment name for an export.
func (es *ExportService) Filename(data *ClipExport) string {
	return fmt.Sprintf("clips_%s.%s", data.ExportInfo.ExportDate.Format("20060102_150405"), data.ExportInfo.Format)
}

func (es *ExportService) exportExcel(data *ClipExport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("Error closing Excel file", "error", err)
		}
	}()

	sheetName := "Clips"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"Rank", "Video ID", "Video Title", "Published", "Start (s)", "End (s)",
		"Timecode", "Score", "Matched Keywords", "Text", "URL",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, clip := range data.Clips {
		row := rowIdx + 2
		values := []interface{}{
			clip.Rank, clip.VideoID, clip.VideoTitle, clip.PublishedAt, clip.StartTime, clip.EndTime,
			clip.Timecode, clip.Score, clip.MatchedKeywords, clip.Text, clip.URL,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	f.SetColWidth(sheetName, "A", "I", 15)
	f.SetColWidth(sheetName, "J", "J", 80)
	f.SetColWidth(sheetName, "K", "K", 45)

	keywordSheet := "Keywords"
	if _, err := f.NewSheet(keywordSheet); err != nil {
		return nil, fmt.Errorf("failed to create keyword sheet: %w", err)
	}
	f.SetSheetRow(keywordSheet, "A1", &[]interface{}{"Term", "Category", "Weight", "Source"})
	for i, kw := range data.Keywords {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(keywordSheet, cell, &[]interface{}{kw.Term, string(kw.Category), kw.Weight, kw.Source})
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryData := [][]interface{}{
		{"Export Date", data.ExportInfo.ExportDate.Format("2006-01-02 15:04:05")},
		{"Query", data.ExportInfo.Query},
		{"Total Clips", data.ExportInfo.TotalClips},
		{"Search Time (ms)", data.ExportInfo.SearchTimeMs},
		{"Total Runtime (s)", totalRuntime(data.Clips)},
	}
	for i, row := range summaryData {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetSheetRow(summarySheet, cell, &row)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func totalRuntime(rows []ClipRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.EndTime - r.StartTime
	}
	return total
}

// Timecode formats seconds as H:MM:SS.
func Timecode(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// ClipURL links to the clip's start on YouTube.
func ClipURL(c models.ClipMatch) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", c.VideoID, int(c.StartTime))
}
