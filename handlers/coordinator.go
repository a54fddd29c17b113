package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"leo-portal-backend/logger"
	"leo-portal-backend/middleware"
	"leo-portal-backend/models"
)

type CoordinatorHandler struct {
	db *pgxpool.Pool
}

func NewCoordinatorHandler(db *pgxpool.Pool) *CoordinatorHandler {
	return &CoordinatorHandler{db: db}
}

// GetByEvent lists the coordinators assigned to an event, joined with
// their contact details.
func (h *CoordinatorHandler) GetByEvent(c *gin.Context) {
	rows, err := h.db.Query(c,
		`SELECT ec.id, ec.event_id, ec.user_id, u.name, u.phone, u.email
		 FROM event_coordinators ec
		 JOIN users u ON u.id = ec.user_id
		 WHERE ec.event_id = $1`,
		c.Param("id"))
	if err != nil {
		logger.Error("coordinators by event query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch coordinators"})
		return
	}
	defer rows.Close()

	assignments := []models.CoordinatorAssignment{}
	for rows.Next() {
		var a models.CoordinatorAssignment
		var email *string
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Name, &a.Phone, &email); err != nil {
			logger.Error("coordinator row scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch coordinators"})
			return
		}
		a.Email = email
		assignments = append(assignments, a)
	}

	c.JSON(http.StatusOK, assignments)
}

// MyEventIDs returns the IDs of the events the caller coordinates.
func (h *CoordinatorHandler) MyEventIDs(c *gin.Context) {
	rows, err := h.db.Query(c,
		"SELECT event_id FROM event_coordinators WHERE user_id = $1", middleware.UserID(c))
	if err != nil {
		logger.Error("my events query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch my events"})
		return
	}
	defer rows.Close()

	eventIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			logger.Error("event id scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch my events"})
			return
		}
		eventIDs = append(eventIDs, id)
	}

	c.JSON(http.StatusOK, gin.H{"eventIds": eventIDs})
}

// Join assigns the calling coordinator to an event. A coordinator may run
// at most two events at a time, counted across all events. Joining an
// event twice is a no-op, though the cap is checked first, so a
// coordinator at the cap is turned away even when the join would have been
// a duplicate. The whole sequence runs in one transaction that locks the
// coordinator's user row, so two concurrent joins cannot both pass the cap
// check.
func (h *CoordinatorHandler) Join(c *gin.Context) {
	var req models.JoinEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.EventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "eventId required"})
		return
	}
	userID := middleware.UserID(c)

	tx, err := h.db.Begin(c)
	if err != nil {
		logger.Error("join begin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}
	defer tx.Rollback(c)

	var lockedID string
	err = tx.QueryRow(c, "SELECT id FROM users WHERE id = $1 FOR UPDATE", userID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		logger.Error("join user lock failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}

	var count int
	if err := tx.QueryRow(c,
		"SELECT COUNT(*) FROM event_coordinators WHERE user_id = $1", userID).Scan(&count); err != nil {
		logger.Error("join count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}
	if count >= models.MaxCoordinatorEvents {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot coordinate more than 2 events. Please exit one event first to join another."})
		return
	}

	var eventExists bool
	if err := tx.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", req.EventID).Scan(&eventExists); err != nil {
		logger.Error("join event lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}
	if !eventExists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	if _, err := tx.Exec(c,
		`INSERT INTO event_coordinators (id, event_id, user_id) VALUES ($1, $2, $3)
		 ON CONFLICT (event_id, user_id) DO NOTHING`,
		uuid.New(), req.EventID, userID); err != nil {
		logger.Error("join insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}

	var assignment models.CoordinatorAssignment
	err = tx.QueryRow(c,
		"SELECT id, event_id, user_id FROM event_coordinators WHERE event_id = $1 AND user_id = $2",
		req.EventID, userID,
	).Scan(&assignment.ID, &assignment.EventID, &assignment.UserID)
	if err != nil {
		logger.Error("join readback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}

	if err := tx.Commit(c); err != nil {
		logger.Error("join commit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join event"})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// LeaveByID removes an assignment by its ID. The delete is scoped to the
// calling user, so coordinators can only leave their own assignments.
func (h *CoordinatorHandler) LeaveByID(c *gin.Context) {
	tag, err := h.db.Exec(c,
		"DELETE FROM event_coordinators WHERE id = $1 AND user_id = $2",
		c.Param("id"), middleware.UserID(c))
	if err != nil {
		logger.Error("leave by id failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to leave event"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveByEvent removes the caller's assignment for the event given in the
// eventId query parameter.
func (h *CoordinatorHandler) LeaveByEvent(c *gin.Context) {
	eventID := c.Query("eventId")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "eventId required"})
		return
	}

	tag, err := h.db.Exec(c,
		"DELETE FROM event_coordinators WHERE event_id = $1 AND user_id = $2",
		eventID, middleware.UserID(c))
	if err != nil {
		logger.Error("leave by event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to leave event"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns every coordinator account, for the admin dashboard.
func (h *CoordinatorHandler) List(c *gin.Context) {
	rows, err := h.db.Query(c,
		"SELECT "+userColumns+" FROM users WHERE role = 'coordinator' ORDER BY created_at DESC")
	if err != nil {
		logger.Error("coordinator list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch coordinators"})
		return
	}
	defer rows.Close()

	coordinators := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error("coordinator scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch coordinators"})
			return
		}
		coordinators = append(coordinators, *user)
	}

	c.JSON(http.StatusOK, coordinators)
}

// UpdateStatus approves or rejects a coordinator account.
func (h *CoordinatorHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateCoordinatorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Status != models.UserStatusApproved && req.Status != models.UserStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status must be approved or rejected"})
		return
	}

	user, err := scanUser(h.db.QueryRow(c,
		"UPDATE users SET status = $1 WHERE id = $2 AND role = 'coordinator' RETURNING "+userColumns,
		req.Status, c.Param("id")))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Coordinator not found"})
		return
	}
	if err != nil {
		logger.Error("coordinator status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, user)
}
