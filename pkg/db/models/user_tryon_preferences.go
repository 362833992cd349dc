package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/fitsync/fitsync-backend/pkg/db/types"
	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// UserTryOnPreferences is the one-per-user try-on settings row.
type UserTryOnPreferences struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID               `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	DefaultViewMode   enums.ViewMode          `gorm:"column:default_view_mode;not null;default:'ar'"`
	AutoSaveResults   bool                    `gorm:"column:auto_save_results;not null;default:true"`
	ShareAnonymously  bool                    `gorm:"column:share_anonymously;not null;default:false"`
	EnabledFeatures   dbtypes.JSONMap         `gorm:"column:enabled_features;type:jsonb;not null;default:'{}'"`
	ProcessingQuality enums.ProcessingQuality `gorm:"column:processing_quality;not null;default:'high'"`
	MaxProcessingTime int                     `gorm:"column:max_processing_time;not null;default:30"`
	StoreImages       bool                    `gorm:"column:store_images;not null;default:true"`
	AllowAnalytics    bool                    `gorm:"column:allow_analytics;not null;default:true"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserTryOnPreferences) TableName() string { return "user_tryon_preferences" }
