package models

import "time"

// Company is the single tenant record. At most one row ever exists; the
// setup transaction enforces the invariant and the unique code is a backstop
// against a concurrent double-bootstrap.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Code    string `gorm:"uniqueIndex;size:10;not null" json:"code"`
	LogoURL string `gorm:"size:512" json:"logo_url,omitempty"`
}
