package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"leo-portal-backend/logger"
	"leo-portal-backend/models"
)

type LeaderboardHandler struct {
	db *pgxpool.Pool
}

func NewLeaderboardHandler(db *pgxpool.Pool) *LeaderboardHandler {
	return &LeaderboardHandler{db: db}
}

func (h *LeaderboardHandler) fetchLeaderboard(c *gin.Context, eventID string) ([]models.LeaderboardEntry, error) {
	rows, err := h.db.Query(c,
		`SELECT l.participant_id, l.score, u.name, u.leo_id, u.roll_no
		 FROM leaderboard l
		 JOIN users u ON u.id = l.participant_id
		 WHERE l.event_id = $1
		 ORDER BY l.score DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ParticipantID, &e.Score, &e.Name, &e.LeoID, &e.RollNo); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetLeaderboard returns an event's scores, highest first.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.fetchLeaderboard(c, c.Param("id"))
	if err != nil {
		logger.Error("leaderboard query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpsertScore inserts or replaces one participant's score and answers with
// the full ranked list.
func (h *LeaderboardHandler) UpsertScore(c *gin.Context) {
	var req models.UpsertScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ParticipantID == "" || req.Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "participantId and score required"})
		return
	}

	eventID := c.Param("id")
	if _, err := h.db.Exec(c,
		`INSERT INTO leaderboard (event_id, participant_id, score) VALUES ($1, $2, $3)
		 ON CONFLICT (event_id, participant_id) DO UPDATE SET score = $3`,
		eventID, req.ParticipantID, *req.Score); err != nil {
		logger.Error("leaderboard upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update leaderboard"})
		return
	}

	entries, err := h.fetchLeaderboard(c, eventID)
	if err != nil {
		logger.Error("leaderboard query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update leaderboard"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetWinners returns an event's winner participant IDs, best rank first.
func (h *LeaderboardHandler) GetWinners(c *gin.Context) {
	rows, err := h.db.Query(c,
		"SELECT participant_id FROM winners WHERE event_id = $1 ORDER BY rank ASC",
		c.Param("id"))
	if err != nil {
		logger.Error("winners query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch winners"})
		return
	}
	defer rows.Close()

	winners := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			logger.Error("winner scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch winners"})
			return
		}
		winners = append(winners, id)
	}

	c.JSON(http.StatusOK, winners)
}

// CompleteEvent finalizes an event: status moves to completed and the
// winner list is rebuilt from the supplied participant IDs, rank 1 first.
// Calling it again with a different list replaces the winners wholesale.
// Status flip, winner delete and winner insert commit together or not at
// all, so a crash cannot leave a completed event with half a winner list.
func (h *LeaderboardHandler) CompleteEvent(c *gin.Context) {
	var req models.CompleteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	eventID := c.Param("id")

	tx, err := h.db.Begin(c)
	if err != nil {
		logger.Error("complete begin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete event"})
		return
	}
	defer tx.Rollback(c)

	event, err := scanEvent(tx.QueryRow(c,
		"UPDATE events SET status = $1 WHERE id = $2 RETURNING "+eventColumns,
		models.EventStatusCompleted, eventID))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		logger.Error("complete status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete event"})
		return
	}

	if _, err := tx.Exec(c, "DELETE FROM winners WHERE event_id = $1", eventID); err != nil {
		logger.Error("complete winners delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete event"})
		return
	}

	for i, participantID := range req.WinnerParticipantIDs {
		if _, err := tx.Exec(c,
			"INSERT INTO winners (event_id, participant_id, rank) VALUES ($1, $2, $3)",
			eventID, participantID, i+1); err != nil {
			logger.Error("complete winner insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete event"})
			return
		}
	}

	if err := tx.Commit(c); err != nil {
		logger.Error("complete commit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete event"})
		return
	}

	c.JSON(http.StatusOK, event)
}
