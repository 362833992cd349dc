package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// User is owned by the external account system; the core only reads the
// ownership and admin facts it needs.
type User struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email      string         `gorm:"column:email;not null;uniqueIndex"`
	Role       enums.UserRole `gorm:"column:role;not null;default:'user'"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	IsVerified bool           `gorm:"column:is_verified;not null;default:false"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// StylePreference carries the externally-managed style profile consumed by
// the recommendation engine.
type StylePreference struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	PreferredColors pq.StringArray `gorm:"column:preferred_colors;type:text[];not null;default:ARRAY[]::text[]"`
	PreferredStyles pq.StringArray `gorm:"column:preferred_styles;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (StylePreference) TableName() string { return "style_preferences" }
