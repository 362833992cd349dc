package models

import "time"

// TryOnFeature is a registry entry describing an optional processing
// capability a user can enable.
type TryOnFeature struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	Name                string    `gorm:"column:name;not null"`
	Description         string    `gorm:"column:description;not null"`
	IsPremium           bool      `gorm:"column:is_premium;not null;default:false"`
	ProcessingCost      float64   `gorm:"column:processing_cost;not null;default:1"`
	AccuracyImprovement float64   `gorm:"column:accuracy_improvement;not null;default:0"`
	IsAvailable         bool      `gorm:"column:is_available;not null;default:true"`
	RequiresGPU         bool      `gorm:"column:requires_gpu;not null;default:false"`
	MinDeviceCapability string    `gorm:"column:min_device_capability;not null;default:'basic'"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TryOnFeature) TableName() string { return "tryon_features" }
