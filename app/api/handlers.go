package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventfeed/eventfeed/app/feed"
	"github.com/eventfeed/eventfeed/app/service"
)

type Handler struct {
	svc          *service.Service
	reader       *feed.Reader
	cacheEnabled bool
}

func NewHandler(svc *service.Service, reader *feed.Reader, cacheEnabled bool) *Handler {
	return &Handler{
		svc:          svc,
		reader:       reader,
		cacheEnabled: cacheEnabled,
	}
}

// queryParams flattens the request query to the single-value map the
// service expects; repeated parameters keep their first value.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func (h *Handler) GetEvents(c *gin.Context) {
	events := h.svc.Events(queryParams(c))
	if events == nil {
		events = []feed.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetEvent(c *gin.Context) {
	params := queryParams(c)
	params["id"] = c.Param("id")

	event := h.svc.Event(params)
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories := h.svc.Categories(queryParams(c))
	if categories == nil {
		categories = []*feed.Group{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	params := queryParams(c)
	params["id"] = c.Param("id")

	category := h.svc.Category(params)
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) GetCities(c *gin.Context) {
	cities := h.svc.Cities(queryParams(c))
	if cities == nil {
		cities = []*feed.Group{}
	}
	c.JSON(http.StatusOK, cities)
}

func (h *Handler) GetCity(c *gin.Context) {
	params := queryParams(c)
	params["id"] = c.Param("id")

	city := h.svc.City(params)
	if city == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *Handler) GetHighlights(c *gin.Context) {
	highlights := h.svc.Highlights(queryParams(c))
	if highlights == nil {
		highlights = []*feed.Highlight{}
	}
	c.JSON(http.StatusOK, highlights)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":     time.Now().In(time.Local).Format(time.RFC3339),
		"feed_file":     h.reader.Path(),
		"cache_enabled": h.cacheEnabled,
	}

	if modTime := h.reader.ModTime(); !modTime.IsZero() {
		health["feed_modified_at"] = modTime.Format(time.RFC3339)
	} else {
		health["feed_modified_at"] = nil
	}

	c.JSON(http.StatusOK, health)
}
