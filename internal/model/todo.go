package model

import "time"

// Todo is a single task row. OwnerID is set from the authenticated
// identity at creation and never changes afterwards.
type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"size:100;not null" json:"description"`
	Priority    int       `gorm:"not null" json:"priority"`
	Complete    bool      `gorm:"not null;default:false" json:"complete"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
