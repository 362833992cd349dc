package models

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/fitsync/fitsync-backend/pkg/db/types"
	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// TryOnSession is a virtual try-on workspace holding 0..N outfit attempts
// and a shared status/progress pair.
type TryOnSession struct {
	ID                 string            `gorm:"column:id;primaryKey"`
	UserID             uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	SessionName        *string           `gorm:"column:session_name"`
	ViewMode           enums.ViewMode    `gorm:"column:view_mode;not null;default:'ar'"`
	DeviceInfo         dbtypes.JSONMap   `gorm:"column:device_info;type:jsonb;not null;default:'{}'"`
	Status             enums.TryOnStatus `gorm:"column:status;not null;default:'pending';index"`
	ProcessingProgress float64           `gorm:"column:processing_progress;not null;default:0"`
	ErrorMessage       *string           `gorm:"column:error_message"`
	ResultImageURL     *string           `gorm:"column:result_image_url"`
	ConfidenceScore    *float64          `gorm:"column:confidence_score"`
	ProcessingTimeMS   *int              `gorm:"column:processing_time_ms"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	CompletedAt        *time.Time        `gorm:"column:completed_at"`

	Attempts []TryOnOutfitAttempt `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (TryOnSession) TableName() string { return "tryon_sessions" }

// NewTryOnID returns an opaque URL-safe identifier with 128 bits of
// randomness, used for sessions and attempts.
func NewTryOnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))[:22]
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
