package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// FashionTrend is read-mostly discovery content maintained by an external
// ingestion pipeline.
type FashionTrend struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string           `gorm:"column:name;not null"`
	Description     *string          `gorm:"column:description"`
	Category        *string          `gorm:"column:category"`
	ImageURL        *string          `gorm:"column:image_url"`
	PopularityScore float64          `gorm:"column:popularity_score;not null;default:0;index"`
	GrowthRate      float64          `gorm:"column:growth_rate;not null;default:0"`
	Scope           enums.TrendScope `gorm:"column:scope;not null;default:'global'"`
	Tags            pq.StringArray   `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (FashionTrend) TableName() string { return "fashion_trends" }
