package models

import (
	"time"

	"github.com/google/uuid"
)

// ExploreContent feeds the discovery grid.
type ExploreContent struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Category      *string   `gorm:"column:category;index"`
	ImageURL      *string   `gorm:"column:image_url"`
	TrendingScore float64   `gorm:"column:trending_score;not null;default:0"`
	IsTrending    bool      `gorm:"column:is_trending;not null;default:false"`
	IsFeatured    bool      `gorm:"column:is_featured;not null;default:false"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ExploreContent) TableName() string { return "explore_content" }
