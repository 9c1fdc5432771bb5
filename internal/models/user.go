package models

import "time"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User profile as served by the backend.
// Read-only on the client side: the only mutation the API allows is
// the nickname update, which the server applies itself.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
}

// Entry of the user activity feed
type Activity struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}
