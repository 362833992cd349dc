package models

import (
	"time"

	"github.com/fitsync/fitsync-backend/pkg/types"
)

// TryOnOutfitAttempt is one outfit processed inside a session.
type TryOnOutfitAttempt struct {
	ID               string                `gorm:"column:id;primaryKey"`
	SessionID        string                `gorm:"column:session_id;not null;index"`
	OutfitName       string                `gorm:"column:outfit_name;not null"`
	Occasion         *string               `gorm:"column:occasion"`
	ClothingItems    []types.OutfitItem    `gorm:"column:clothing_items;type:jsonb;serializer:json"`
	ConfidenceScore  *float64              `gorm:"column:confidence_score"`
	FitAnalysis      []types.FitAnalysis   `gorm:"column:fit_analysis;type:jsonb;serializer:json"`
	ColorAnalysis    []types.ColorAnalysis `gorm:"column:color_analysis;type:jsonb;serializer:json"`
	StyleScore       *float64              `gorm:"column:style_score"`
	UserRating       *int                  `gorm:"column:user_rating"`
	IsFavorite       bool                  `gorm:"column:is_favorite;not null;default:false"`
	IsShared         bool                  `gorm:"column:is_shared;not null;default:false"`
	ResultImageURL   *string               `gorm:"column:result_image_url"`
	ProcessingTimeMS *int                  `gorm:"column:processing_time_ms"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (TryOnOutfitAttempt) TableName() string { return "tryon_outfit_attempts" }
