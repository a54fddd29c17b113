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

type PaymentHandler struct {
	db *pgxpool.Pool
}

func NewPaymentHandler(db *pgxpool.Pool) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// Create records a confirmed payment for a participation and flips the
// participation's payment status to paid. The amount snapshots the event's
// cost at this moment; payments are never updated afterwards.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ParticipationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "participationId required"})
		return
	}

	var eventID string
	err := h.db.QueryRow(c,
		"SELECT event_id FROM participations WHERE id = $1", req.ParticipationID).Scan(&eventID)
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Participation not found"})
		return
	}
	if err != nil {
		logger.Error("payment participation lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment"})
		return
	}

	var amount float64
	if err := h.db.QueryRow(c, "SELECT cost FROM events WHERE id = $1", eventID).Scan(&amount); err != nil && err != pgx.ErrNoRows {
		logger.Error("payment cost lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment"})
		return
	}

	if _, err := h.db.Exec(c,
		`INSERT INTO payments (id, participation_id, transaction_id, screenshot, amount)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), req.ParticipationID, req.TransactionID, req.Screenshot, amount); err != nil {
		logger.Error("payment insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment"})
		return
	}

	if _, err := h.db.Exec(c,
		"UPDATE participations SET payment_status = $1 WHERE id = $2",
		models.PaymentStatusPaid, req.ParticipationID); err != nil {
		logger.Error("payment status flip failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded"})
}

// eventRevenueRow is one grouped row of the summary query.
type eventRevenueRow struct {
	EventID string
	Title   string
	Cost    float64
	Count   int
}

// buildPaymentSummary folds grouped participation counts into the admin
// summary. Every participation counts toward expected revenue, whether or
// not it has been paid yet.
func buildPaymentSummary(rows []eventRevenueRow) models.PaymentSummary {
	summary := models.PaymentSummary{ByEvent: map[string]models.EventRevenue{}}
	for _, row := range rows {
		amount := float64(row.Count) * row.Cost
		summary.Total += amount
		summary.ByEvent[row.EventID] = models.EventRevenue{
			Count:  row.Count,
			Amount: amount,
			Title:  row.Title,
		}
	}
	return summary
}

// GetSummary aggregates expected revenue per event for the admin dashboard.
func (h *PaymentHandler) GetSummary(c *gin.Context) {
	rows, err := h.db.Query(c,
		`SELECT p.event_id, e.title, e.cost, COUNT(p.id) AS cnt
		 FROM participations p
		 JOIN events e ON e.id = p.event_id
		 GROUP BY p.event_id, e.title, e.cost`)
	if err != nil {
		logger.Error("payment summary query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch summary"})
		return
	}
	defer rows.Close()

	grouped := []eventRevenueRow{}
	for rows.Next() {
		var row eventRevenueRow
		if err := rows.Scan(&row.EventID, &row.Title, &row.Cost, &row.Count); err != nil {
			logger.Error("payment summary scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch summary"})
			return
		}
		grouped = append(grouped, row)
	}

	c.JSON(http.StatusOK, buildPaymentSummary(grouped))
}
