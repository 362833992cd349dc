package ml

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fitsync/fitsync-backend/pkg/config"
	"github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/types"
	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestInitializeWithoutDependenciesDisablesModels(t *testing.T) {
	reg := NewRegistry(config.MLConfig{}, testLogger())
	reg.Initialize(context.Background())

	status := reg.Status()
	for _, name := range AllModels {
		info, ok := status[string(name)]
		if !ok {
			t.Fatalf("missing status for %s", name)
		}
		if info.Status != StatusDisabled {
			t.Errorf("%s status = %s, want %s", name, info.Status, StatusDisabled)
		}
		if info.Error == "" {
			t.Errorf("%s disabled without detail", name)
		}
	}
	if reg.IsReady(ModelVirtualTryOn) {
		t.Error("virtual_tryon should not be ready")
	}
}

func TestInitializeWithCacheDirReadiesCPUModels(t *testing.T) {
	cfg := config.MLConfig{ModelCacheDir: t.TempDir()}
	reg := NewRegistry(cfg, testLogger())
	reg.Initialize(context.Background())

	for _, name := range []ModelName{ModelPoseEstimation, ModelColorExtraction, ModelStyleMatching} {
		if !reg.IsReady(name) {
			t.Errorf("%s should be ready", name)
		}
	}
	// try-on needs a GPU, detection needs weights
	if reg.IsReady(ModelVirtualTryOn) {
		t.Error("virtual_tryon should be disabled without gpu")
	}
	if reg.IsReady(ModelClothingDetection) {
		t.Error("clothing_detection should be disabled without weights")
	}

	info := reg.Status()[string(ModelPoseEstimation)]
	if info.Device != "cpu" {
		t.Errorf("device = %s, want cpu", info.Device)
	}
	if info.Version == "" {
		t.Error("version should be populated")
	}
}

func TestInitializeIsIdempotentAndRetries(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "yolov8n.pt")

	cfg := config.MLConfig{ModelCacheDir: dir, YOLOModelPath: weights}
	reg := NewRegistry(cfg, testLogger())

	reg.Initialize(context.Background())
	if reg.IsReady(ModelClothingDetection) {
		t.Fatal("detection should be disabled before weights exist")
	}

	if err := os.WriteFile(weights, []byte("weights"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg.Initialize(context.Background())
	if !reg.IsReady(ModelClothingDetection) {
		t.Fatal("detection should become ready after retry")
	}

	// a third call leaves ready models alone
	reg.Initialize(context.Background())
	if !reg.IsReady(ModelClothingDetection) {
		t.Fatal("ready model regressed after repeat initialize")
	}
}

func TestGenerateTryOnWhenDisabledReturnsDependencyError(t *testing.T) {
	reg := NewRegistry(config.MLConfig{ModelCacheDir: t.TempDir()}, testLogger())
	reg.Initialize(context.Background())

	_, err := reg.GenerateTryOn(context.Background(), GenerationRequest{
		SessionID:   "sess-1",
		AttemptID:   "att-1",
		OutfitItems: []types.OutfitItem{{ID: "i1", Name: "Shirt", Category: "tops", ImageURL: "u1"}},
	})
	if err == nil {
		t.Fatal("expected dependency error")
	}
	if !errors.Is(err, errors.CodeDependency) {
		t.Fatalf("expected %s, got %v", errors.CodeDependency, err)
	}
}

func TestGenerateTryOnWhenReady(t *testing.T) {
	cfg := config.MLConfig{ModelCacheDir: t.TempDir(), EnableGPU: true}
	reg := NewRegistry(cfg, testLogger())
	reg.Initialize(context.Background())

	if !reg.IsReady(ModelVirtualTryOn) {
		t.Fatal("virtual_tryon should be ready with gpu and cache dir")
	}

	attemptID := "att-2"
	result, err := reg.GenerateTryOn(context.Background(), GenerationRequest{
		SessionID:   "sess-1",
		AttemptID:   attemptID,
		OutfitItems: []types.OutfitItem{{ID: "i1", Name: "Shirt", Category: "tops", ImageURL: "u1"}},
	})
	if err != nil {
		t.Fatalf("generating: %v", err)
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("confidence = %f, want (0,1]", result.Confidence)
	}
	if result.ResultImageURL == "" {
		t.Error("result image url should be populated")
	}
}

func TestGenerateTryOnRequiresItems(t *testing.T) {
	reg := NewRegistry(config.MLConfig{ModelCacheDir: t.TempDir(), EnableGPU: true}, testLogger())
	reg.Initialize(context.Background())

	_, err := reg.GenerateTryOn(context.Background(), GenerationRequest{SessionID: "sess-1"})
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStyleProfileNormalizesTags(t *testing.T) {
	reg := NewRegistry(config.MLConfig{ModelCacheDir: t.TempDir()}, testLogger())
	reg.Initialize(context.Background())

	enrichment, err := reg.StyleProfile(context.Background(), uuid.New(), []string{" Formal ", "formal", "", "streetwear"})
	if err != nil {
		t.Fatalf("style profile: %v", err)
	}
	want := []string{"formal", "streetwear"}
	if len(enrichment.Archetypes) != len(want) {
		t.Fatalf("archetypes = %v, want %v", enrichment.Archetypes, want)
	}
	for i, tag := range want {
		if enrichment.Archetypes[i] != tag {
			t.Errorf("archetypes[%d] = %s, want %s", i, enrichment.Archetypes[i], tag)
		}
	}
}
