package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"leo-portal-backend/logger"
	"leo-portal-backend/middleware"
	"leo-portal-backend/models"
	"leo-portal-backend/util"
)

const userColumns = "id, email, role, name, leo_id, roll_no, phone, status, created_at"

type AuthHandler struct {
	db        *pgxpool.Pool
	jwtSecret string
}

func NewAuthHandler(db *pgxpool.Pool, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.Name, &u.LeoID, &u.RollNo, &u.Phone, &u.Status, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates by role. Students are identified by email alone; an
// unknown student email answers {needsProfile: true} so the client can
// send them through registration. Coordinators and admins check a bcrypt
// password, and unapproved coordinators are rejected.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		return
	}

	switch req.Role {
	case models.RoleStudent:
		user, err := scanUser(h.db.QueryRow(c,
			"SELECT "+userColumns+" FROM users WHERE LOWER(email) = $1 AND role = $2",
			email, models.RoleStudent))
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusOK, gin.H{"needsProfile": true})
			return
		}
		if err != nil {
			logger.Error("student login query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
			return
		}
		h.respondWithToken(c, http.StatusOK, user)

	case models.RoleCoordinator, models.RoleAdmin:
		var user models.User
		var passwordHash *string
		err := h.db.QueryRow(c,
			"SELECT "+userColumns+", password_hash FROM users WHERE LOWER(email) = $1 AND role = $2",
			email, req.Role,
		).Scan(&user.ID, &user.Email, &user.Role, &user.Name, &user.LeoID,
			&user.RollNo, &user.Phone, &user.Status, &user.CreatedAt, &passwordHash)
		if err == pgx.ErrNoRows {
			message := "No admin found with this email."
			if req.Role == models.RoleCoordinator {
				message = "No coordinator found with this email."
			}
			c.JSON(http.StatusNotFound, gin.H{"message": message})
			return
		}
		if err != nil {
			logger.Error("login query failed", zap.String("role", req.Role), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
			return
		}

		if req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password required"})
			return
		}
		hash := ""
		if passwordHash != nil {
			hash = *passwordHash
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong password."})
			return
		}
		if req.Role == models.RoleCoordinator &&
			(user.Status == nil || *user.Status != models.UserStatusApproved) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is not approved yet."})
			return
		}
		h.respondWithToken(c, http.StatusOK, &user)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
	}
}

// Register creates a student account with a freshly generated leoId.
// Registering an email that already belongs to a student just issues a new
// token for the existing account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Name == "" || req.RollNo == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, name, rollNo, phone required"})
		return
	}

	existing, err := scanUser(h.db.QueryRow(c,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = $1 AND role = $2",
		email, models.RoleStudent))
	if err == nil {
		h.respondWithToken(c, http.StatusOK, existing)
		return
	}
	if err != pgx.ErrNoRows {
		logger.Error("register lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	leoID, err := util.GenerateLeoID(func(candidate string) (bool, error) {
		var taken bool
		err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM users WHERE leo_id = $1)", candidate).Scan(&taken)
		return taken, err
	})
	if err != nil {
		logger.Error("leo id generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	user, err := scanUser(h.db.QueryRow(c,
		`INSERT INTO users (id, email, role, name, leo_id, roll_no, phone, status)
		 VALUES ($1, $2, 'student', $3, $4, $5, $6, 'approved')
		 RETURNING `+userColumns,
		uuid.New(), email, strings.TrimSpace(req.Name), leoID,
		strings.TrimSpace(req.RollNo), strings.TrimSpace(req.Phone)))
	if err != nil {
		// A concurrent registration for the same email can slip past the
		// lookup above; the unique index turns the loser's insert into a
		// 23505. Treat that as "already registered" and return the winner.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			existing, lookupErr := scanUser(h.db.QueryRow(c,
				"SELECT "+userColumns+" FROM users WHERE LOWER(email) = $1 AND role = $2",
				email, models.RoleStudent))
			if lookupErr == nil {
				h.respondWithToken(c, http.StatusOK, existing)
				return
			}
		}
		logger.Error("register insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := scanUser(h.db.QueryRow(c,
		"SELECT "+userColumns+" FROM users WHERE id = $1", middleware.UserID(c)))
	if err == pgx.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		logger.Error("me query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.SignToken(user.ID, user.Email, user.Role, h.jwtSecret)
	if err != nil {
		logger.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token"})
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}
