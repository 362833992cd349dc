package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/fitsync/fitsync-backend/pkg/db/types"
	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// NearbyLocation is a geographic social entity. The recognized metadata
// fields depend on Type: people carry style/archetype hints, events carry
// venue and schedule info, hotspots carry category and rating.
type NearbyLocation struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type      enums.LocationType `gorm:"column:type;not null;index"`
	Name      string             `gorm:"column:name;not null"`
	Latitude  float64            `gorm:"column:latitude;not null"`
	Longitude float64            `gorm:"column:longitude;not null"`
	Metadata  dbtypes.JSONMap    `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
	IsActive  bool               `gorm:"column:is_active;not null;default:true"`
	IsPublic  bool               `gorm:"column:is_public;not null;default:true"`
	ExpiresAt *time.Time         `gorm:"column:expires_at"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (NearbyLocation) TableName() string { return "nearby_locations" }
