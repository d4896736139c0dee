package model

import "time"

// AuditEvent records a mutating operation. Events are published to the
// audit queue and persisted asynchronously by the audit worker.
type AuditEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	Entity    string    `gorm:"size:32;not null" json:"entity"`
	EntityID  uint      `gorm:"index" json:"entity_id"`
	CreatedAt time.Time `json:"created_at"`
}
