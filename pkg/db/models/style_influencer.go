package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// StyleInfluencer backs the influencer spotlight.
type StyleInfluencer struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Handle        string           `gorm:"column:handle;not null;uniqueIndex"`
	AvatarURL     *string          `gorm:"column:avatar_url"`
	Specialty     *string          `gorm:"column:specialty"`
	FollowerCount int              `gorm:"column:follower_count;not null;default:0"`
	Scope         enums.TrendScope `gorm:"column:scope;not null;default:'global'"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (StyleInfluencer) TableName() string { return "style_influencers" }
