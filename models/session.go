package models

import "time"

// Session is a server-side login session row. The cookie only carries the
// session id; the row is the source of truth for validity and expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
