package explorer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inlay/internal/logging"
	"inlay/internal/lookup"
	"inlay/internal/search"
)

// entryView is a lookup entry without its base64 payload, which would bloat
// listing responses to megabytes.
type entryView struct {
	Key         string   `json:"key"`
	SizeBytes   int64    `json:"size_bytes"`
	HasMetadata bool     `json:"has_metadata"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Filename    string   `json:"filename"`
}

func newEntryView(key string, entry lookup.Entry) entryView {
	return entryView{
		Key:         key,
		SizeBytes:   entry.SizeBytes,
		HasMetadata: entry.HasMetadata,
		Category:    entry.Category,
		Tags:        entry.Tags,
		Description: entry.Description,
		Filename:    entry.Filename,
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleSummary(c echo.Context) error {
	file, err := s.current()
	if err != nil {
		return s.lookupError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"generated_at": file.GeneratedAt,
		"summary":      file.Summary,
	})
}

func (s *Server) handleLookup(c echo.Context) error {
	file, err := s.current()
	if err != nil {
		return s.lookupError(c, err)
	}
	views := make([]entryView, 0, len(file.Images))
	for _, key := range file.Keys() {
		views = append(views, newEntryView(key, file.Images[key]))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total":   len(views),
		"entries": views,
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	file, err := s.current()
	if err != nil {
		return s.lookupError(c, err)
	}

	query := search.Query{
		Tags:        c.QueryParams()["tag"],
		Category:    c.QueryParam("category"),
		Description: c.QueryParam("description"),
		Keyword:     c.QueryParam("keyword"),
	}
	if query.IsEmpty() {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "supply at least one of tag, category, description, keyword",
		})
	}

	results := search.Run(file, query)
	views := make([]entryView, 0, len(results))
	for _, result := range results {
		views = append(views, newEntryView(result.Key, result.Entry))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total":   len(views),
		"entries": views,
	})
}

func (s *Server) handleAsset(c echo.Context) error {
	file, err := s.current()
	if err != nil {
		return s.lookupError(c, err)
	}
	key := c.Param("key")
	entry, ok := file.Get(key)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "no entry for key", "key": key})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"key":    key,
		"base64": entry.DataURI,
	})
}

func (s *Server) lookupError(c echo.Context, err error) error {
	s.logger.Warn("lookup unavailable", logging.Error(err))
	return c.JSON(http.StatusServiceUnavailable, map[string]any{
		"error": "lookup file unavailable; run the converter first",
	})
}
