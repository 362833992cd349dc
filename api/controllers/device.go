package controllers

import (
	"net/http"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/api/validators"
	"github.com/fitsync/fitsync-backend/internal/tryon"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

// DeviceCapabilitiesRequest describes what the client device can do. The
// endpoint is public: it only validates the payload and reports which
// features the device qualifies for, no state is written.
type DeviceCapabilitiesRequest struct {
	Platform   string `json:"platform" validate:"required,oneof=ios android web"`
	OSVersion  string `json:"os_version" validate:"required"`
	HasGPU     bool   `json:"has_gpu"`
	MemoryMB   int    `json:"memory_mb" validate:"required,min=512"`
	HasCamera  bool   `json:"has_camera"`
	Capability string `json:"capability" validate:"omitempty,oneof=basic standard advanced"`
}

type deviceFeatureSupport struct {
	FeatureID string `json:"feature_id"`
	Supported bool   `json:"supported"`
	Reason    string `json:"reason,omitempty"`
}

var capabilityRank = map[string]int{"basic": 0, "standard": 1, "advanced": 2}

// CheckDeviceCapabilities validates a device profile against the feature
// catalog.
func CheckDeviceCapabilities(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeviceCapabilitiesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		capability := req.Capability
		if capability == "" {
			capability = "basic"
		}

		support := make([]deviceFeatureSupport, 0)
		for _, feature := range tryon.DefaultFeatures() {
			entry := deviceFeatureSupport{FeatureID: feature.ID, Supported: true}
			if feature.RequiresGPU && !req.HasGPU {
				entry.Supported = false
				entry.Reason = "requires GPU"
			} else if capabilityRank[capability] < capabilityRank[feature.MinDeviceCapability] {
				entry.Supported = false
				entry.Reason = "requires " + feature.MinDeviceCapability + " device capability"
			}
			support = append(support, entry)
		}

		responses.WriteSuccess(w, map[string]any{
			"platform":   req.Platform,
			"capability": capability,
			"ar_capable": req.HasCamera,
			"features":   support,
		})
	}
}
