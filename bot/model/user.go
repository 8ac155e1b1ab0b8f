package model

import "time"

type UserRole int

const (
	RoleMember UserRole = iota + 1
	RoleAdmin
)

type User struct {
	ID        int64
	FirstName string
	Username  string
	Role      UserRole
}

// DisplayName prefers the @username.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}

// LogEntry is one handled chat command.
type LogEntry struct {
	ChannelID string
	User      User
	Command   string
	Args      string
	Failed    bool
	CreatedAt time.Time
}
