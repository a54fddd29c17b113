package models

import "time"

// User roles.
const (
	RoleStudent     = "student"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

// Coordinator account statuses.
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

// User is a portal account. Students carry a leoId and no password;
// coordinators and admins authenticate with a password hash, and
// coordinators additionally carry an approval status.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      *string   `json:"name,omitempty"`
	LeoID     *string   `json:"leoId,omitempty"`
	RollNo    *string   `json:"rollNo,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Status    *string   `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	RollNo string `json:"rollNo"`
	Phone  string `json:"phone"`
}

type UpdateCoordinatorStatusRequest struct {
	Status string `json:"status"`
}
