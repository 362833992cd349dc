package tryon

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/db/models"
	dbtypes "github.com/fitsync/fitsync-backend/pkg/db/types"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Progress checkpoints of one processing pass.
const (
	progressClaimed  = 0.1
	progressAnalyzed = 0.3
	progressScored   = 0.7
)

const defaultSessionListLimit = 20

type sessionRepo interface {
	CreateSession(ctx context.Context, session *models.TryOnSession) error
	SessionForUser(ctx context.Context, sessionID string, userID uuid.UUID, withAttempts bool) (*models.TryOnSession, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.TryOnSession, error)
	CreateAttempt(ctx context.Context, attempt *models.TryOnOutfitAttempt) error
	AttemptInSession(ctx context.Context, attemptID, sessionID string) (*models.TryOnOutfitAttempt, error)
	BeginProcessing(ctx context.Context, sessionID string) (bool, error)
	AdvanceProgress(ctx context.Context, sessionID string, progress float64) error
	CompleteSession(ctx context.Context, sessionID string, confidence float64, resultImageURL string, processingTimeMS int, completedAt time.Time) error
	FailSession(ctx context.Context, sessionID, message string) error
	SaveAttemptResults(ctx context.Context, attempt *models.TryOnOutfitAttempt) error
	RateAttempt(ctx context.Context, attemptID string, rating int, isFavorite bool) error
	PreferencesByUser(ctx context.Context, userID uuid.UUID) (*models.UserTryOnPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *models.UserTryOnPreferences) error
	AvailableFeatures(ctx context.Context) ([]models.TryOnFeature, error)
	SeedFeatures(ctx context.Context, features []models.TryOnFeature) error
	InsertAnalytics(ctx context.Context, row *models.TryOnAnalytics) error
}

type generator interface {
	GenerateTryOn(ctx context.Context, req ml.GenerationRequest) (*ml.GenerationResult, error)
}

// Service is the try-on session engine: it owns the session state machine,
// drives attempts through the model, and persists structured results.
type Service struct {
	repo      sessionRepo
	generator generator
	cache     *cache.Layer
	logg      *logger.Logger
	metrics   *metrics.TryOnMetrics
	now       func() time.Time
}

func NewService(repo sessionRepo, gen generator, cacheLayer *cache.Layer, logg *logger.Logger, m *metrics.TryOnMetrics) *Service {
	return &Service{
		repo:      repo,
		generator: gen,
		cache:     cacheLayer,
		logg:      logg,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateSession opens a pending session. No model work happens here.
func (s *Service) CreateSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*models.TryOnSession, error) {
	viewMode := enums.ViewModeAR
	if strings.TrimSpace(req.ViewMode) != "" {
		parsed, err := enums.ParseViewMode(req.ViewMode)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, err.Error())
		}
		viewMode = parsed
	}

	session := &models.TryOnSession{
		ID:                 models.NewTryOnID(),
		UserID:             userID,
		SessionName:        req.SessionName,
		ViewMode:           viewMode,
		DeviceInfo:         deviceInfoFrom(req.DeviceInfo),
		Status:             enums.TryOnStatusPending,
		ProcessingProgress: 0.0,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		if errors.IsUniqueViolation(err) {
			return nil, errors.Wrap(errors.CodeConflict, err, "session already exists")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating session")
	}
	return session, nil
}

// ListSessions returns the user's most recent sessions.
func (s *Service) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.TryOnSession, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}
	sessions, err := s.repo.ListSessionsByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing sessions")
	}
	return sessions, nil
}

// GetSession returns a session with its attempts. Missing and not-owned are
// the same NOT_FOUND so existence never leaks.
func (s *Service) GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*models.TryOnSession, error) {
	session, err := s.repo.SessionForUser(ctx, sessionID, userID, true)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	if session == nil {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}
	return session, nil
}

// AddOutfitAttempt appends an attempt to a pending-or-later session without
// touching session status.
func (s *Service) AddOutfitAttempt(ctx context.Context, userID uuid.UUID, sessionID string, req AddAttemptRequest) (*models.TryOnOutfitAttempt, error) {
	if err := validateAttemptRequest(req); err != nil {
		return nil, err
	}

	session, err := s.repo.SessionForUser(ctx, sessionID, userID, false)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	if session == nil {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}

	attempt := &models.TryOnOutfitAttempt{
		ID:            models.NewTryOnID(),
		SessionID:     session.ID,
		OutfitName:    req.OutfitName,
		Occasion:      req.Occasion,
		ClothingItems: req.ClothingItems,
	}
	if err := s.repo.CreateAttempt(ctx, attempt); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating attempt")
	}
	return attempt, nil
}

func validateAttemptRequest(req AddAttemptRequest) error {
	if strings.TrimSpace(req.OutfitName) == "" {
		return errors.New(errors.CodeValidation, "outfit_name is required")
	}
	if len(req.ClothingItems) == 0 {
		return errors.New(errors.CodeValidation, "clothing_items must be non-empty")
	}
	for i, item := range req.ClothingItems {
		if item.ID == "" || item.Name == "" || item.Category == "" || item.ImageURL == "" {
			return errors.New(errors.CodeValidation, fmt.Sprintf("clothing_items[%d] must include id, name, category and image_url", i))
		}
	}
	return nil
}

// ProcessResult is the final state after one processing pass.
type ProcessResult struct {
	Session *models.TryOnSession       `json:"session"`
	Attempt *models.TryOnOutfitAttempt `json:"attempt"`
}

// ProcessOutfit drives one attempt through the full pipeline. Exactly one
// call can process a given session; a concurrent second call is rejected
// with CONFLICT. Model faults degrade to synthetic analysis; only
// authorization and storage faults surface to the caller.
func (s *Service) ProcessOutfit(ctx context.Context, userID uuid.UUID, sessionID, attemptID string, req ProcessRequest) (*ProcessResult, error) {
	session, err := s.repo.SessionForUser(ctx, sessionID, userID, false)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	if session == nil {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}

	attempt, err := s.repo.AttemptInSession(ctx, attemptID, session.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading attempt")
	}
	if attempt == nil {
		return nil, errors.New(errors.CodeNotFound, "attempt not found")
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.repo.BeginProcessing(ctx, session.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "claiming session")
	}
	if !claimed {
		return nil, s.rejectUnclaimable(ctx, userID, session.ID)
	}

	start := s.now()
	procCtx, cancel := context.WithTimeout(ctx, time.Duration(prefs.MaxProcessingTime)*time.Second)
	defer cancel()

	result, runErr := s.runPipeline(procCtx, session, attempt, prefs, req)
	if runErr != nil {
		s.failSession(ctx, session.ID, runErr)
		if typed := errors.As(runErr); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeInternal, runErr, "processing outfit")
	}

	elapsed := s.now().Sub(start)
	processingMS := int(elapsed.Milliseconds())

	attempt.ConfidenceScore = &result.Confidence
	attempt.FitAnalysis = analyzeFit(attempt.ClothingItems)
	attempt.ColorAnalysis = analyzeColor(attempt.ClothingItems)
	style := styleScore(attempt.ClothingItems, userID.String())
	attempt.StyleScore = &style
	attempt.ResultImageURL = &result.ResultImageURL
	attempt.ProcessingTimeMS = &processingMS

	if err := s.repo.SaveAttemptResults(ctx, attempt); err != nil {
		s.failSession(ctx, session.ID, err)
		return nil, errors.Wrap(errors.CodeInternal, err, "persisting attempt results")
	}

	completedAt := s.now()
	if err := s.repo.CompleteSession(ctx, session.ID, result.Confidence, result.ResultImageURL, processingMS, completedAt); err != nil {
		s.failSession(ctx, session.ID, err)
		return nil, errors.Wrap(errors.CodeInternal, err, "completing session")
	}

	s.recordAnalytics(ctx, userID, session.ID, attempt.ID, processingMS, result.Confidence, prefs)
	if s.metrics != nil {
		s.metrics.ObserveProcessing(string(ml.ModelVirtualTryOn), elapsed)
		s.metrics.IncCompleted(string(ml.ModelVirtualTryOn))
	}

	// read-after-write for this user's cached recommendation surfaces
	s.cache.InvalidateUser(ctx, userID.String())

	final, err := s.repo.SessionForUser(ctx, session.ID, userID, false)
	if err != nil || final == nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "reloading session")
	}
	return &ProcessResult{Session: final, Attempt: attempt}, nil
}

// runPipeline performs the analyze and generate stages under the processing
// deadline. Model faults fall back to deterministic synthetic output; only
// storage faults and cancellation propagate.
func (s *Service) runPipeline(ctx context.Context, session *models.TryOnSession, attempt *models.TryOnOutfitAttempt, prefs *models.UserTryOnPreferences, req ProcessRequest) (*ml.GenerationResult, error) {
	if err := s.checkpoint(ctx, session.ID, progressAnalyzed); err != nil {
		return nil, err
	}

	result, err := s.generator.GenerateTryOn(ctx, ml.GenerationRequest{
		SessionID:    session.ID,
		AttemptID:    attempt.ID,
		UserID:       session.UserID,
		OutfitItems:  attempt.ClothingItems,
		UserImageURL: req.UserImageURL,
		Quality:      string(prefs.ProcessingQuality),
		EnabledFlags: enabledFlags(prefs.EnabledFeatures),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "try-on model unavailable, using synthetic result")
		result = &ml.GenerationResult{
			ResultImageURL: fmt.Sprintf("https://storage.fitsync.app/tryon/%s/%s/tryon_result.jpg", session.ID, attempt.ID),
			Confidence:     fallbackConfidence,
		}
	}

	if err := s.checkpoint(ctx, session.ID, progressScored); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) checkpoint(ctx context.Context, sessionID string, progress float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.repo.AdvanceProgress(ctx, sessionID, progress)
}

// rejectUnclaimable maps a failed claim to the right status-machine error.
func (s *Service) rejectUnclaimable(ctx context.Context, userID uuid.UUID, sessionID string) error {
	session, err := s.repo.SessionForUser(ctx, sessionID, userID, false)
	if err != nil || session == nil {
		return errors.Wrap(errors.CodeInternal, err, "inspecting session state")
	}
	if session.Status == enums.TryOnStatusProcessing {
		return errors.New(errors.CodeConflict, "session is already being processed")
	}
	return errors.New(errors.CodeInvalidState, fmt.Sprintf("session is %s and cannot be processed", session.Status))
}

// failSession transitions to FAILED with a diagnostic. The write uses a
// detached context so a cancelled or expired request cannot strand the
// session mid-processing.
func (s *Service) failSession(ctx context.Context, sessionID string, cause error) {
	message := "processing failed"
	reason := "internal"
	switch {
	case stdErrors.Is(cause, context.DeadlineExceeded):
		message = "timeout"
		reason = "timeout"
	case stdErrors.Is(cause, context.Canceled):
		message = "cancelled"
		reason = "cancelled"
	case cause != nil:
		message = cause.Error()
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.repo.FailSession(writeCtx, sessionID, message); err != nil {
		s.logg.Error(writeCtx, "recording session failure", err)
	}
	if s.metrics != nil {
		s.metrics.IncFailed(reason)
	}
}

func (s *Service) recordAnalytics(ctx context.Context, userID uuid.UUID, sessionID, attemptID string, processingMS int, confidence float64, prefs *models.UserTryOnPreferences) {
	if prefs == nil || !prefs.AllowAnalytics {
		return
	}
	row := &models.TryOnAnalytics{
		ID:               uuid.New(),
		UserID:           userID,
		SessionID:        sessionID,
		AttemptID:        attemptID,
		EventType:        "outfit_processed",
		ProcessingTimeMS: processingMS,
		ConfidenceScore:  confidence,
	}
	if err := s.repo.InsertAnalytics(ctx, row); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "analytics write skipped")
	}
}

// Status reports the polling view of one attempt.
func (s *Service) Status(ctx context.Context, userID uuid.UUID, sessionID, attemptID string) (*AttemptStatus, error) {
	session, err := s.repo.SessionForUser(ctx, sessionID, userID, false)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	if session == nil {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}

	attempt, err := s.repo.AttemptInSession(ctx, attemptID, session.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading attempt")
	}
	if attempt == nil {
		return nil, errors.New(errors.CodeNotFound, "attempt not found")
	}

	return &AttemptStatus{
		SessionID:       session.ID,
		AttemptID:       attempt.ID,
		Status:          session.Status,
		Progress:        session.ProcessingProgress,
		ErrorMessage:    session.ErrorMessage,
		ConfidenceScore: attempt.ConfidenceScore,
		ResultImageURL:  attempt.ResultImageURL,
		CompletedAt:     session.CompletedAt,
	}, nil
}

// RateOutfit stores user feedback on a processed attempt; the last write
// wins and session state is untouched.
func (s *Service) RateOutfit(ctx context.Context, userID uuid.UUID, sessionID, attemptID string, rating int, isFavorite bool) error {
	if rating < 1 || rating > 5 {
		return errors.New(errors.CodeValidation, "rating must be between 1 and 5")
	}

	session, err := s.repo.SessionForUser(ctx, sessionID, userID, false)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	if session == nil {
		return errors.New(errors.CodeNotFound, "session not found")
	}

	attempt, err := s.repo.AttemptInSession(ctx, attemptID, session.ID)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "loading attempt")
	}
	if attempt == nil {
		return errors.New(errors.CodeNotFound, "attempt not found")
	}

	if err := s.repo.RateAttempt(ctx, attempt.ID, rating, isFavorite); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving rating")
	}
	return nil
}

// GetPreferences returns stored preferences, materializing and persisting
// the defaults on first access.
func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserTryOnPreferences, error) {
	prefs, err := s.repo.PreferencesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading preferences")
	}
	if prefs != nil {
		return prefs, nil
	}

	prefs = defaultPreferences(userID)
	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "materializing default preferences")
	}
	return prefs, nil
}

// UpdatePreferences replaces the stored preferences. Applying the same body
// twice yields the same stored state.
func (s *Service) UpdatePreferences(ctx context.Context, userID uuid.UUID, req PreferencesUpdate) (*models.UserTryOnPreferences, error) {
	viewMode, err := enums.ParseViewMode(req.DefaultViewMode)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, err.Error())
	}
	quality, err := enums.ParseProcessingQuality(req.ProcessingQuality)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, err.Error())
	}
	if req.MaxProcessingTime < 5 || req.MaxProcessingTime > 120 {
		return nil, errors.New(errors.CodeValidation, "max_processing_time must be between 5 and 120 seconds")
	}

	enabled := dbtypes.JSONMap{}
	for feature, on := range req.EnabledFeatures {
		enabled[feature] = on
	}

	prefs := &models.UserTryOnPreferences{
		ID:                uuid.New(),
		UserID:            userID,
		DefaultViewMode:   viewMode,
		AutoSaveResults:   req.AutoSaveResults,
		ShareAnonymously:  req.ShareAnonymously,
		EnabledFeatures:   enabled,
		ProcessingQuality: quality,
		MaxProcessingTime: req.MaxProcessingTime,
		StoreImages:       req.StoreImages,
		AllowAnalytics:    req.AllowAnalytics,
	}
	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving preferences")
	}
	return s.GetPreferences(ctx, userID)
}

func defaultPreferences(userID uuid.UUID) *models.UserTryOnPreferences {
	return &models.UserTryOnPreferences{
		ID:              uuid.New(),
		UserID:          userID,
		DefaultViewMode: enums.ViewModeAR,
		AutoSaveResults: true,
		EnabledFeatures: dbtypes.JSONMap{
			"lighting": true,
			"fit":      true,
			"movement": false,
		},
		ProcessingQuality: enums.ProcessingQualityHigh,
		MaxProcessingTime: 30,
		StoreImages:       true,
		AllowAnalytics:    true,
	}
}

func enabledFlags(features dbtypes.JSONMap) map[string]bool {
	flags := make(map[string]bool, len(features))
	for name := range features {
		flags[name] = features.Bool(name)
	}
	return flags
}

// ListFeatures returns the feature registry, cached, with the seeded set as
// the fallback when the table is unreachable.
func (s *Service) ListFeatures(ctx context.Context) []models.TryOnFeature {
	key := cache.BuildKey(cache.NamespaceTryOnFeatures)
	var cached []models.TryOnFeature
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	features, err := s.repo.AvailableFeatures(ctx)
	if err != nil || len(features) == 0 {
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "feature registry unreachable, serving defaults")
		}
		return DefaultFeatures()
	}

	s.cache.Set(ctx, key, features)
	return features
}

// EnsureSeedFeatures installs the default registry rows, keeping operator
// edits on existing rows.
func (s *Service) EnsureSeedFeatures(ctx context.Context) error {
	return s.repo.SeedFeatures(ctx, DefaultFeatures())
}
