package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitsync/fitsync-backend/pkg/enums"
)

// TrendInsight is short-lived editorial analysis; rows past valid_until are
// never served.
type TrendInsight struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Scope      enums.TrendScope `gorm:"column:scope;not null;default:'global';index"`
	Timeframe  enums.Timeframe  `gorm:"column:timeframe;not null;default:'week'"`
	Title      string           `gorm:"column:title;not null"`
	Insight    string           `gorm:"column:insight;not null"`
	GrowthRate float64          `gorm:"column:growth_rate;not null;default:0"`
	ValidUntil time.Time        `gorm:"column:valid_until;not null;index"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (TrendInsight) TableName() string { return "trend_insights" }
