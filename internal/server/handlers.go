package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/festivalmap/festivals/internal/calendar"
	"github.com/festivalmap/festivals/internal/catalog"
	"github.com/festivalmap/festivals/internal/festival"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/gin-gonic/gin"
)

// MaxPageSize caps the size query parameter.
const MaxPageSize = 100

// Options configures a Handler.
type Options struct {
	PageSize int              // default page size; catalog.DefaultPageSize if zero
	Now      func() time.Time // defaults to time.Now
	Logger   *logger.Logger
}

// Handler serves catalog requests
type Handler struct {
	catalog  *catalog.Catalog
	pageSize int
	now      func() time.Time
	log      *logger.Logger
	loadedAt time.Time
}

// NewHandler creates a Handler over cat.
func NewHandler(cat *catalog.Catalog, opts Options) *Handler {
	if opts.PageSize < 1 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Handler{
		catalog:  cat,
		pageSize: opts.PageSize,
		now:      opts.Now,
		log:      opts.Logger,
		loadedAt: opts.Now(),
	}
}

// FestivalPage is the body of a listing response
type FestivalPage struct {
	Region     string             `json:"region"`
	Items      []catalog.View     `json:"items"`
	Pagination catalog.Pagination `json:"pagination"`
}

func (h *Handler) today() string {
	return festival.Today(h.now())
}

// ListFestivals returns one page of festivals, optionally filtered by region.
func (h *Handler) ListFestivals(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	size, ok := intQuery(c, "size", h.pageSize)
	if !ok {
		return
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	region := c.Query("region")
	result := h.catalog.Page(region, page, size)

	c.JSON(http.StatusOK, FestivalPage{
		Region:     region,
		Items:      catalog.Views(result.Items, h.today()),
		Pagination: result.Pagination,
	})
}

// GetFestival returns one festival card.
func (h *Handler) GetFestival(c *gin.Context) {
	r, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, catalog.NewView(r, h.today()))
}

// ListRegions returns the sorted distinct regions.
func (h *Handler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.catalog.Locations()})
}

// FestivalCalendar returns one festival as an .ics download.
func (h *Handler) FestivalCalendar(c *gin.Context) {
	r, ok := h.lookup(c)
	if !ok {
		return
	}

	ics, err := calendar.GenerateICS(r, h.now())
	if err != nil {
		h.log.WarnErr("calendar generation failed", logger.Fields{"id": r.ID}, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=festival-"+strconv.Itoa(r.ID)+".ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// RegionCalendar returns every festival of a region (or all) as one .ics download.
func (h *Handler) RegionCalendar(c *gin.Context) {
	region := c.Query("region")
	name := "전국 축제"
	if region != "" {
		name = region + " 축제"
	}

	ics := calendar.GenerateBulkICS(h.catalog.Filter(region), name, h.now())
	if ics == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no festivals to export"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=festivals.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// Health reports liveness and the size of the loaded dataset.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"festivals": h.catalog.Len(),
		"regions":   len(h.catalog.Locations()),
		"loaded_at": h.loadedAt.Format(time.RFC3339),
		"today":     h.today(),
	})
}

func (h *Handler) lookup(c *gin.Context) (*festival.Record, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid festival id"})
		return nil, false
	}
	r, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "festival not found"})
		return nil, false
	}
	return r, true
}

// intQuery reads a positive integer query parameter, writing a 400 response if malformed.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return n, true
}
