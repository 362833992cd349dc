package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// ClothingItem is a wardrobe entry. CRUD lives outside the core; reads here
// must always filter is_active (soft delete).
type ClothingItem struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Name        string                 `gorm:"column:name;not null"`
	Category    enums.ClothingCategory `gorm:"column:category;not null;index"`
	Subcategory *string                `gorm:"column:subcategory"`
	Color       *string                `gorm:"column:color"`
	ColorHex    *string                `gorm:"column:color_hex"`
	Price       *decimal.Decimal       `gorm:"column:price;type:numeric(10,2)"`
	ImageURL    string                 `gorm:"column:image_url;not null"`
	Brand       *string                `gorm:"column:brand"`
	Size        *string                `gorm:"column:size"`
	Seasons     pq.StringArray         `gorm:"column:seasons;type:text[];not null;default:ARRAY[]::text[]"`
	Occasions   pq.StringArray         `gorm:"column:occasions;type:text[];not null;default:ARRAY[]::text[]"`
	StyleTags   pq.StringArray         `gorm:"column:style_tags;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive    bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (ClothingItem) TableName() string { return "clothing_items" }
