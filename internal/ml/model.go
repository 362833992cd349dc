package ml

import (
	"github.com/fitsync/fitsync-backend/pkg/types"
	"github.com/google/uuid"
)

// ModelName identifies one of the backing models behind the adapter.
type ModelName string

const (
	ModelClothingDetection ModelName = "clothing_detection"
	ModelPoseEstimation    ModelName = "pose_estimation"
	ModelVirtualTryOn      ModelName = "virtual_tryon"
	ModelColorExtraction   ModelName = "color_extraction"
	ModelStyleMatching     ModelName = "style_matching"
)

// AllModels lists every model the registry manages, in load order.
var AllModels = []ModelName{
	ModelClothingDetection,
	ModelPoseEstimation,
	ModelVirtualTryOn,
	ModelColorExtraction,
	ModelStyleMatching,
}

// ModelStatus is the lifecycle state of a single model.
type ModelStatus string

const (
	StatusNotInitialized ModelStatus = "not_initialized"
	StatusReady          ModelStatus = "ready"
	StatusDisabled       ModelStatus = "disabled"
	StatusError          ModelStatus = "error"
)

// ModelInfo is the externally visible state of one model.
type ModelInfo struct {
	Status  ModelStatus `json:"status"`
	Device  string      `json:"device"`
	Version string      `json:"version"`
	Error   string      `json:"error,omitempty"`
}

// GenerationRequest carries everything the try-on model needs for one attempt.
type GenerationRequest struct {
	SessionID    string
	AttemptID    string
	UserID       uuid.UUID
	OutfitItems  []types.OutfitItem
	UserImageURL string
	Quality      string
	EnabledFlags map[string]bool
}

// GenerationResult is the try-on model output consumed by the session engine.
type GenerationResult struct {
	ResultImageURL string
	Confidence     float64
}

// StyleEnrichment is the style-matching model output consumed by the
// recommendation service. Missing enrichment is represented by nil.
type StyleEnrichment struct {
	Archetypes      []string
	ColorPalette    []string
	ConfidenceScore float64
}
