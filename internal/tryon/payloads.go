package tryon

import (
	"time"

	dbtypes "github.com/fitsync/fitsync-backend/pkg/db/types"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/types"
)

// CreateSessionRequest opens a new try-on workspace.
type CreateSessionRequest struct {
	SessionName *string        `json:"session_name,omitempty"`
	ViewMode    string         `json:"view_mode,omitempty"`
	DeviceInfo  map[string]any `json:"device_info,omitempty"`
}

// AddAttemptRequest appends one outfit to a session.
type AddAttemptRequest struct {
	OutfitName    string             `json:"outfit_name" validate:"required"`
	Occasion      *string            `json:"occasion,omitempty"`
	ClothingItems []types.OutfitItem `json:"clothing_items" validate:"required,min=1,dive"`
}

// ProcessRequest triggers processing of one attempt.
type ProcessRequest struct {
	UserImageURL string `json:"user_image_url,omitempty"`
}

// PreferencesUpdate is the full-replace body of PUT preferences.
type PreferencesUpdate struct {
	DefaultViewMode   string          `json:"default_view_mode" validate:"required"`
	AutoSaveResults   bool            `json:"auto_save_results"`
	ShareAnonymously  bool            `json:"share_anonymously"`
	EnabledFeatures   map[string]bool `json:"enabled_features"`
	ProcessingQuality string          `json:"processing_quality" validate:"required"`
	MaxProcessingTime int             `json:"max_processing_time" validate:"required,min=5,max=120"`
	StoreImages       bool            `json:"store_images"`
	AllowAnalytics    bool            `json:"allow_analytics"`
}

// AttemptStatus is the polling view of one attempt's processing state.
type AttemptStatus struct {
	SessionID       string            `json:"session_id"`
	AttemptID       string            `json:"attempt_id"`
	Status          enums.TryOnStatus `json:"status"`
	Progress        float64           `json:"progress"`
	ErrorMessage    *string           `json:"error_message,omitempty"`
	ConfidenceScore *float64          `json:"confidence_score,omitempty"`
	ResultImageURL  *string           `json:"result_image_url,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

func deviceInfoFrom(raw map[string]any) dbtypes.JSONMap {
	if raw == nil {
		return dbtypes.JSONMap{}
	}
	return dbtypes.JSONMap(raw)
}
