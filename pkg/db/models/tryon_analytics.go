package models

import (
	"time"

	"github.com/google/uuid"
)

// TryOnAnalytics is an append-only event row written after processing when
// the user allows analytics.
type TryOnAnalytics struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	SessionID        string    `gorm:"column:session_id;not null;index"`
	AttemptID        string    `gorm:"column:attempt_id;not null"`
	EventType        string    `gorm:"column:event_type;not null"`
	ProcessingTimeMS int       `gorm:"column:processing_time_ms;not null;default:0"`
	ConfidenceScore  float64   `gorm:"column:confidence_score;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TryOnAnalytics) TableName() string { return "tryon_analytics" }
