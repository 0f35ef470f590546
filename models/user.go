package models

import "time"

// Role is the access role of an AirGuard account.
type Role string

// Status is the lifecycle state of an AirGuard account.
type Status string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"

	StatusReady   Status = "Ready"
	StatusBlocked Status = "Blocked"
)

// DefaultPassword returns the initial password of an account created from
// the console. It is mailed to the new user right after sign-up.
func DefaultPassword(role Role) string {
	if role == RoleAdmin {
		return "@Admin01"
	}
	return "@Student01"
}

// User is a remote-owned account record.
//
// The console never patches users in place: every fetch replaces the whole
// list, so the struct mirrors the wire shape of the remote API one to one.
type User struct {
	// ID is the remote document identifier.
	ID string `json:"_id"`

	// AccountID is the human-facing login identifier (student or staff number).
	AccountID string `json:"account_id"`

	// Username is the display name.
	Username string `json:"username"`

	// Email is optional for students.
	Email string `json:"email,omitempty"`

	// Password is only sent on sign-up and login, never returned.
	Password string `json:"password,omitempty"`

	Role   Role   `json:"role"`
	Status Status `json:"status"`

	// DeviceNotif is the push token of the user's mobile device, if any.
	DeviceNotif string `json:"device_notif,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserForm is the editable subset of a [User] submitted by the add and edit
// forms. It is validated before any request is sent.
type UserForm struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role"`
	Status    Status `json:"status,omitempty"`
}

// FormFromUser returns the editable fields of u.
func FormFromUser(u User) UserForm {
	return UserForm{
		AccountID: u.AccountID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
	}
}
