package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"leo-portal-backend/logger"
	"leo-portal-backend/middleware"
	"leo-portal-backend/models"
)

const participationColumns = "id, event_id, user_id, name, leo_id, roll_no, payment_type, payment_status, arrived, screenshot, transaction_id, registered_at"

type ParticipationHandler struct {
	db *pgxpool.Pool
}

func NewParticipationHandler(db *pgxpool.Pool) *ParticipationHandler {
	return &ParticipationHandler{db: db}
}

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	var p models.Participation
	err := row.Scan(&p.ID, &p.EventID, &p.UserID, &p.Name, &p.LeoID, &p.RollNo,
		&p.PaymentType, &p.PaymentStatus, &p.Arrived, &p.Screenshot,
		&p.TransactionID, &p.RegisteredAt)
	if err != nil {
		return nil, err
	}
	// Older clients read the owner under studentId.
	p.StudentID = p.UserID
	return &p, nil
}

func (h *ParticipationHandler) collectParticipations(rows pgx.Rows) ([]models.Participation, error) {
	defer rows.Close()
	participations := []models.Participation{}
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		participations = append(participations, *p)
	}
	return participations, rows.Err()
}

// GetByEvent lists an event's roster in registration order.
func (h *ParticipationHandler) GetByEvent(c *gin.Context) {
	rows, err := h.db.Query(c,
		"SELECT "+participationColumns+" FROM participations WHERE event_id = $1 ORDER BY registered_at ASC",
		c.Param("id"))
	if err != nil {
		logger.Error("participations by event query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch participations"})
		return
	}

	participations, err := h.collectParticipations(rows)
	if err != nil {
		logger.Error("participation scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch participations"})
		return
	}
	c.JSON(http.StatusOK, participations)
}

// GetAll returns every participation for admins and only the caller's own
// rows for everyone else.
func (h *ParticipationHandler) GetAll(c *gin.Context) {
	var rows pgx.Rows
	var err error
	if middleware.UserRole(c) == models.RoleAdmin {
		rows, err = h.db.Query(c,
			"SELECT "+participationColumns+" FROM participations ORDER BY registered_at DESC")
	} else {
		rows, err = h.db.Query(c,
			"SELECT "+participationColumns+" FROM participations WHERE user_id = $1 ORDER BY registered_at DESC",
			middleware.UserID(c))
	}
	if err != nil {
		logger.Error("participations list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch participations"})
		return
	}

	participations, err := h.collectParticipations(rows)
	if err != nil {
		logger.Error("participation scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch participations"})
		return
	}
	c.JSON(http.StatusOK, participations)
}

// Create registers a student for an event. The student's name, leoId and
// rollNo are copied onto the row so the roster stays stable if the profile
// changes later. Registering twice for the same event is a conflict.
func (h *ParticipationHandler) Create(c *gin.Context) {
	var req models.CreateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}
	if req.EventID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "eventId and userId required"})
		return
	}

	var name, leoID, rollNo *string
	err := h.db.QueryRow(c,
		"SELECT name, leo_id, roll_no FROM users WHERE id = $1", userID,
	).Scan(&name, &leoID, &rollNo)
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		logger.Error("participation user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create participation"})
		return
	}

	var eventExists bool
	if err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", req.EventID).Scan(&eventExists); err != nil {
		logger.Error("participation event lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create participation"})
		return
	}
	if !eventExists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	var duplicate bool
	if err := h.db.QueryRow(c,
		"SELECT EXISTS(SELECT 1 FROM participations WHERE event_id = $1 AND user_id = $2)",
		req.EventID, userID).Scan(&duplicate); err != nil {
		logger.Error("participation duplicate check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create participation"})
		return
	}
	if duplicate {
		c.JSON(http.StatusConflict, gin.H{"message": "Already registered for this event"})
		return
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypePayAtArrival
	}
	var paymentStatus *string
	if paymentType == models.PaymentTypePayNow {
		pending := models.PaymentStatusPending
		paymentStatus = &pending
	}

	participation, err := scanParticipation(h.db.QueryRow(c,
		`INSERT INTO participations (id, event_id, user_id, name, leo_id, roll_no, payment_type, payment_status, screenshot, transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+participationColumns,
		uuid.New(), req.EventID, userID, name, leoID, rollNo,
		paymentType, paymentStatus, req.Screenshot, req.TransactionID))
	if err != nil {
		logger.Error("participation insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create participation"})
		return
	}

	c.JSON(http.StatusCreated, participation)
}

// Remove deletes a participation. Only the owning student, a coordinator,
// or an admin may do so.
func (h *ParticipationHandler) Remove(c *gin.Context) {
	id := c.Param("id")

	var ownerID string
	err := h.db.QueryRow(c, "SELECT user_id FROM participations WHERE id = $1", id).Scan(&ownerID)
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Participation not found"})
		return
	}
	if err != nil {
		logger.Error("participation lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete participation"})
		return
	}

	if !canModifyParticipation(middleware.UserRole(c), ownerID, middleware.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only remove your own participation"})
		return
	}

	if _, err := h.db.Exec(c, "DELETE FROM participations WHERE id = $1", id); err != nil {
		logger.Error("participation delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete participation"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Update applies a partial update to the arrived flag and/or payment
// status. An empty patch is rejected rather than silently accepted.
func (h *ParticipationHandler) Update(c *gin.Context) {
	var req models.UpdateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Arrived == nil && req.PaymentStatus == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "arrived or paymentStatus required"})
		return
	}

	id := c.Param("id")
	var ownerID string
	err := h.db.QueryRow(c, "SELECT user_id FROM participations WHERE id = $1", id).Scan(&ownerID)
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Participation not found"})
		return
	}
	if err != nil {
		logger.Error("participation lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update participation"})
		return
	}

	if !canModifyParticipation(middleware.UserRole(c), ownerID, middleware.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own participation"})
		return
	}

	updates := []string{}
	values := []any{}
	if req.Arrived != nil {
		updates = append(updates, fmt.Sprintf("arrived = $%d", len(values)+1))
		values = append(values, *req.Arrived)
	}
	if req.PaymentStatus != nil {
		updates = append(updates, fmt.Sprintf("payment_status = $%d", len(values)+1))
		values = append(values, *req.PaymentStatus)
	}
	values = append(values, id)

	participation, err := scanParticipation(h.db.QueryRow(c,
		fmt.Sprintf("UPDATE participations SET %s WHERE id = $%d RETURNING %s",
			strings.Join(updates, ", "), len(values), participationColumns),
		values...))
	if err == pgx.ErrNoRows {
		// Row deleted between the ownership lookup and the update.
		c.JSON(http.StatusNotFound, gin.H{"message": "Participation not found"})
		return
	}
	if err != nil {
		logger.Error("participation update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update participation"})
		return
	}

	c.JSON(http.StatusOK, participation)
}

// canModifyParticipation is the ownership policy for mutating or deleting
// a participation: privileged roles always may, everyone else only their
// own row.
func canModifyParticipation(role, ownerID, callerID string) bool {
	if role == models.RoleAdmin || role == models.RoleCoordinator {
		return true
	}
	return ownerID == callerID
}
