package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"leo-portal-backend/logger"
	"leo-portal-backend/models"
)

const eventColumns = "id, title, description, date, time, venue, category, status, cost, rules, team_size, created_at"

type EventHandler struct {
	db *pgxpool.Pool
}

func NewEventHandler(db *pgxpool.Pool) *EventHandler {
	return &EventHandler{db: db}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Venue,
		&e.Category, &e.Status, &e.Cost, &e.Rules, &e.TeamSize, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (h *EventHandler) GetAll(c *gin.Context) {
	rows, err := h.db.Query(c,
		"SELECT "+eventColumns+" FROM events ORDER BY created_at DESC")
	if err != nil {
		logger.Error("events list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			logger.Error("event row scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
			return
		}
		events = append(events, *event)
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := scanEvent(h.db.QueryRow(c,
		"SELECT "+eventColumns+" FROM events WHERE id = $1", c.Param("id")))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		logger.Error("event query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Create inserts a new event. Status defaults to open, cost to 0.
func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title required"})
		return
	}
	status, cost, ok := normalizeEventFields(c, &req)
	if !ok {
		return
	}

	event, err := scanEvent(h.db.QueryRow(c,
		`INSERT INTO events (id, title, description, date, time, venue, category, status, cost, rules, team_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+eventColumns,
		uuid.New(), req.Title, req.Description, req.Date, req.Time, req.Venue,
		req.Category, status, cost, req.Rules, req.TeamSize))
	if err != nil {
		logger.Error("event insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update replaces all editable fields of an event.
func (h *EventHandler) Update(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title required"})
		return
	}
	status, cost, ok := normalizeEventFields(c, &req)
	if !ok {
		return
	}

	event, err := scanEvent(h.db.QueryRow(c,
		`UPDATE events
		 SET title = $1, description = $2, date = $3, time = $4, venue = $5,
		     category = $6, status = $7, cost = $8, rules = $9, team_size = $10
		 WHERE id = $11
		 RETURNING `+eventColumns,
		req.Title, req.Description, req.Date, req.Time, req.Venue,
		req.Category, status, cost, req.Rules, req.TeamSize, c.Param("id")))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		logger.Error("event update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateStatus moves an event through its lifecycle. Only the four known
// statuses are accepted; winner rebuilds happen via CompleteEvent, not here.
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !models.IsValidEventStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	event, err := scanEvent(h.db.QueryRow(c,
		"UPDATE events SET status = $1 WHERE id = $2 RETURNING "+eventColumns,
		req.Status, c.Param("id")))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		logger.Error("event status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetPasses exists for client compatibility; passes were never persisted
// server-side, so a valid event always answers an empty list.
func (h *EventHandler) GetPasses(c *gin.Context) {
	var exists bool
	err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", c.Param("id")).Scan(&exists)
	if err != nil {
		logger.Error("passes query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch passes"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, []any{})
}

// normalizeEventFields applies the create/update defaults and rejects
// negative costs. It writes the error response itself when validation fails.
func normalizeEventFields(c *gin.Context, req *models.EventRequest) (status string, cost float64, ok bool) {
	status = models.EventStatusOpen
	if req.Status != nil {
		status = *req.Status
	}
	if req.Cost != nil {
		cost = *req.Cost
	}
	if cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cost must be non-negative"})
		return "", 0, false
	}
	return status, cost, true
}
