package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressplan/pressplan/internal/clientdir"
	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/monthjob"
	"github.com/pressplan/pressplan/internal/mutate"
	"github.com/pressplan/pressplan/internal/ordering"
	"github.com/pressplan/pressplan/internal/stats"
	"github.com/pressplan/pressplan/internal/undo"
	"github.com/pressplan/pressplan/internal/worktracker"
	"gorm.io/gorm"
)

// deps bundles what handlers need. Tracker nil falls back to the works
// table backend per request transaction.
type deps struct {
	db       *gorm.DB
	tracker  worktracker.Tracker
	sessions *sessions
}

const userHeader = "X-User-ID"

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, d *deps) {
	api := router.Group("/api", requireUser())

	api.POST("/items", d.handleCreate)
	api.PATCH("/items/:id", d.handlePatch)
	api.DELETE("/items/:id", d.handleDelete)
	api.POST("/items/:id/duplicate", d.handleDuplicate)
	api.POST("/items/:id/toggle", d.handleToggle)
	api.POST("/items/:id/label", d.handleSetLabel)
	api.POST("/reorder", d.handleReorder)

	api.POST("/bulk/move", d.handleBulkMove)
	api.POST("/bulk/label", d.handleBulkLabel)
	api.POST("/bulk/toggle", d.handleBulkToggle)
	api.POST("/bulk/delete", d.handleBulkDelete)

	api.POST("/undo", d.handleUndo)

	api.GET("/calendar", d.handleCalendar)
	api.GET("/stats", d.handleStats)

	api.POST("/month/fill", d.handleFillMonth)
	api.POST("/month/fill/client", d.handleFillClient)
	api.POST("/month/empty", d.handleEmptyMonth)

	api.GET("/clients", d.handleClientList)
	api.POST("/clients", d.handleClientCreate)
	api.GET("/clients/settings", d.handleClientSettings)
	api.PUT("/clients/:id/cadence", d.handleSetCadence)
}

// requireUser rejects requests without an acting user header.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(userHeader) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userHeader + " header"})
			return
		}
		c.Next()
	}
}

func actor(c *gin.Context) string {
	return c.GetHeader(userHeader)
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", item.ErrValidation, s)
	}
	return d, nil
}

func yearMonth(c *gin.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad year %q", item.ErrValidation, c.Query("year"))
	}
	m, err := strconv.Atoi(c.Query("month"))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("%w: bad month %q", item.ErrValidation, c.Query("month"))
	}
	return year, time.Month(m), nil
}

type createRequest struct {
	OwnerID     string `json:"ownerId"`
	AssignedTo  string `json:"assignedTo"`
	ClientID    string `json:"clientId"`
	Date        string `json:"date"`
	IsExtra     bool   `json:"isExtra"`
	Kind        string `json:"kind"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label"`
	Priority    string `json:"priority"`
	WorkID      string `json:"workId"`
}

func (d *deps) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	created, err := mutate.Create(d.db, d.tracker, actor(c), mutate.CreateInput{
		OwnerID:     req.OwnerID,
		AssignedTo:  req.AssignedTo,
		ClientID:    req.ClientID,
		Date:        date,
		IsExtra:     req.IsExtra,
		Kind:        req.Kind,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Label:       req.Label,
		Priority:    req.Priority,
		WorkID:      req.WorkID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(created))
}

type patchRequest struct {
	Date        *string `json:"date"`
	IsExtra     *bool   `json:"isExtra"`
	ClientID    *string `json:"clientId"`
	Kind        *string `json:"kind"`
	Type        *string `json:"type"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assignedTo"`
	WorkID      *string `json:"workId"`
	Label       *string `json:"label"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

func (d *deps) handlePatch(c *gin.Context) {
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	p := mutate.Patch{
		IsExtra:     req.IsExtra,
		ClientID:    req.ClientID,
		Kind:        req.Kind,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		WorkID:      req.WorkID,
		Label:       req.Label,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.Date != nil {
		date, err := parseDay(*req.Date)
		if err != nil {
			fail(c, err)
			return
		}
		p.Date = &date
	}
	updated, prev, err := mutate.Update(d.db, d.tracker, actor(c), c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	// Only placement changes get an inverse recorded.
	if p.Date != nil || p.IsExtra != nil {
		d.sessions.forUser(actor(c)).Record(undo.ForMove(prev))
	}
	c.JSON(http.StatusOK, viewOf(updated))
}

func (d *deps) handleDelete(c *gin.Context) {
	prev, err := mutate.Delete(d.db, actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	d.sessions.forUser(actor(c)).Record(undo.ForDelete(prev))
	c.JSON(http.StatusOK, gin.H{"deleted": prev.ID})
}

type duplicateRequest struct {
	Date    string `json:"date"`
	IsExtra bool   `json:"isExtra"`
}

func (d *deps) handleDuplicate(c *gin.Context) {
	var req duplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	dup, err := mutate.Duplicate(d.db, actor(c), c.Param("id"), date, req.IsExtra)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(dup))
}

func (d *deps) handleToggle(c *gin.Context) {
	updated, prev, err := mutate.ToggleDone(d.db, actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	d.sessions.forUser(actor(c)).Record(undo.ForToggle(prev))
	c.JSON(http.StatusOK, viewOf(updated))
}

type labelRequest struct {
	Label string `json:"label"`
}

func (d *deps) handleSetLabel(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	updated, _, err := mutate.SetLabel(d.db, actor(c), c.Param("id"), req.Label)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(updated))
}

type reorderRequest struct {
	OwnerID string   `json:"ownerId"` // defaults to the acting user
	Date    string   `json:"date"`
	IsExtra bool     `json:"isExtra"`
	IDs     []string `json:"ids"`
}

func (d *deps) handleReorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	// Assignees reorder a delegating owner's bucket by naming it; edit
	// rights on every member are still checked per item.
	owner := req.OwnerID
	if owner == "" {
		owner = actor(c)
	}
	bucket := ordering.At(owner, date, req.IsExtra)
	prevOrder, err := mutate.Reorder(d.db, actor(c), bucket, req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	d.sessions.forUser(actor(c)).Record(undo.ForReorder(bucket, prevOrder))
	c.JSON(http.StatusOK, gin.H{"order": req.IDs})
}

type bulkMoveRequest struct {
	IDs     []string `json:"ids"`
	Date    string   `json:"date"`
	IsExtra bool     `json:"isExtra"`
}

func (d *deps) handleBulkMove(c *gin.Context) {
	var req bulkMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	applied, err := mutate.BulkMove(d.db, actor(c), req.IDs, date, req.IsExtra)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

type bulkLabelRequest struct {
	IDs   []string `json:"ids"`
	Label string   `json:"label"`
}

func (d *deps) handleBulkLabel(c *gin.Context) {
	var req bulkLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	applied, err := mutate.BulkSetLabel(d.db, actor(c), req.IDs, req.Label)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

type bulkIDsRequest struct {
	IDs []string `json:"ids"`
}

func (d *deps) handleBulkToggle(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	applied, err := mutate.BulkToggleDone(d.db, actor(c), req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (d *deps) handleBulkDelete(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	applied, err := mutate.BulkDelete(d.db, actor(c), req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (d *deps) handleUndo(c *gin.Context) {
	undone, err := d.sessions.forUser(actor(c)).Undo(d.db, d.tracker, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"undone": undone})
}

func (d *deps) handleCalendar(c *gin.Context) {
	year, month, err := yearMonth(c)
	if err != nil {
		fail(c, err)
		return
	}
	items, err := item.ListMonth(d.db, actor(c), year, month)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": viewsOf(items)})
}

func (d *deps) handleStats(c *gin.Context) {
	year, month, err := yearMonth(c)
	if err != nil {
		fail(c, err)
		return
	}
	items, err := item.ListMonth(d.db, actor(c), year, month)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ComputeMonth(items, year, month))
}

type monthRequest struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	ClientID string `json:"clientId"`
}

func (req monthRequest) validate() error {
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: bad month %d", item.ErrValidation, req.Month)
	}
	return nil
}

func (d *deps) handleFillMonth(c *gin.Context) {
	var req monthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	if err := req.validate(); err != nil {
		fail(c, err)
		return
	}
	created, err := monthjob.FillMonth(d.db, actor(c), req.Year, time.Month(req.Month))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (d *deps) handleFillClient(c *gin.Context) {
	var req monthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	if err := req.validate(); err != nil {
		fail(c, err)
		return
	}
	created, err := monthjob.FillMonthForClient(d.db, actor(c), req.ClientID, req.Year, time.Month(req.Month))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (d *deps) handleEmptyMonth(c *gin.Context) {
	var req monthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	if err := req.validate(); err != nil {
		fail(c, err)
		return
	}
	removed, err := monthjob.EmptyMonth(d.db, actor(c), req.Year, time.Month(req.Month), req.ClientID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type clientView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d *deps) handleClientList(c *gin.Context) {
	clients, err := clientdir.List(d.db, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]clientView, len(clients))
	for i, cl := range clients {
		views[i] = clientView{ID: cl.ID, Name: cl.Name}
	}
	c.JSON(http.StatusOK, gin.H{"clients": views})
}

type clientCreateRequest struct {
	Name string `json:"name"`
}

func (d *deps) handleClientCreate(c *gin.Context) {
	var req clientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	if req.Name == "" {
		fail(c, fmt.Errorf("%w: client name is required", item.ErrValidation))
		return
	}
	cl, err := clientdir.Create(d.db, actor(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientView{ID: cl.ID, Name: cl.Name})
}

func (d *deps) handleClientSettings(c *gin.Context) {
	settings, err := clientdir.Settings(d.db, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	type row struct {
		ClientID        string `json:"clientId"`
		ContentsPerWeek int    `json:"contentsPerWeek"`
	}
	rows := make([]row, len(settings))
	for i, s := range settings {
		rows[i] = row{ClientID: s.ClientID, ContentsPerWeek: s.ContentsPerWeek}
	}
	c.JSON(http.StatusOK, gin.H{"settings": rows})
}

type cadenceRequest struct {
	ContentsPerWeek int `json:"contentsPerWeek"`
}

func (d *deps) handleSetCadence(c *gin.Context) {
	var req cadenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", item.ErrValidation, err))
		return
	}
	if err := clientdir.SetCadence(d.db, actor(c), c.Param("id"), req.ContentsPerWeek); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientId": c.Param("id"), "contentsPerWeek": req.ContentsPerWeek})
}
