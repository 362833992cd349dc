package tryon

import (
	"context"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository owns try-on persistence. Status transition guards live here so
// the state machine stays correct even under concurrent processing calls.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSession(ctx context.Context, session *models.TryOnSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// SessionForUser loads a session owned by the user; a missing row and a row
// owned by someone else are indistinguishable to the caller.
func (r *Repository) SessionForUser(ctx context.Context, sessionID string, userID uuid.UUID, withAttempts bool) (*models.TryOnSession, error) {
	query := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID)
	if withAttempts {
		query = query.Preload("Attempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var session models.TryOnSession
	if err := query.First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *Repository) ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.TryOnSession, error) {
	var sessions []models.TryOnSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *Repository) CreateAttempt(ctx context.Context, attempt *models.TryOnOutfitAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// AttemptInSession loads an attempt scoped to its session.
func (r *Repository) AttemptInSession(ctx context.Context, attemptID, sessionID string) (*models.TryOnOutfitAttempt, error) {
	var attempt models.TryOnOutfitAttempt
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", attemptID, sessionID).
		First(&attempt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// BeginProcessing claims the session for exactly one processing pass. The
// guarded update only succeeds from pending, so a concurrent second caller
// sees zero rows affected and is rejected upstream.
func (r *Repository) BeginProcessing(ctx context.Context, sessionID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ? AND status = ?", sessionID, enums.TryOnStatusPending).
		Updates(map[string]any{
			"status":              enums.TryOnStatusProcessing,
			"processing_progress": progressClaimed,
			"error_message":       nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// AdvanceProgress bumps progress while the session is processing. The
// progress guard keeps the value monotonic regardless of write ordering.
func (r *Repository) AdvanceProgress(ctx context.Context, sessionID string, progress float64) error {
	return r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ? AND status = ? AND processing_progress <= ?", sessionID, enums.TryOnStatusProcessing, progress).
		Update("processing_progress", progress).Error
}

// CompleteSession finalizes the session and mirrors the attempt result onto
// it. Only a processing session can complete.
func (r *Repository) CompleteSession(ctx context.Context, sessionID string, confidence float64, resultImageURL string, processingTimeMS int, completedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ? AND status = ?", sessionID, enums.TryOnStatusProcessing).
		Updates(map[string]any{
			"status":              enums.TryOnStatusCompleted,
			"processing_progress": 1.0,
			"confidence_score":    confidence,
			"result_image_url":    resultImageURL,
			"processing_time_ms":  processingTimeMS,
			"completed_at":        completedAt,
		}).Error
}

// FailSession records a failure with its diagnostic. Terminal sessions are
// left untouched.
func (r *Repository) FailSession(ctx context.Context, sessionID, message string) error {
	return r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ? AND status NOT IN ?", sessionID, []enums.TryOnStatus{enums.TryOnStatusCompleted, enums.TryOnStatusFailed}).
		Updates(map[string]any{
			"status":        enums.TryOnStatusFailed,
			"error_message": message,
		}).Error
}

// SaveAttemptResults persists the analysis columns of a processed attempt.
func (r *Repository) SaveAttemptResults(ctx context.Context, attempt *models.TryOnOutfitAttempt) error {
	return r.db.WithContext(ctx).
		Model(&models.TryOnOutfitAttempt{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]any{
			"confidence_score":   attempt.ConfidenceScore,
			"fit_analysis":       attempt.FitAnalysis,
			"color_analysis":     attempt.ColorAnalysis,
			"style_score":        attempt.StyleScore,
			"result_image_url":   attempt.ResultImageURL,
			"processing_time_ms": attempt.ProcessingTimeMS,
		}).Error
}

// RateAttempt stores the user's rating; the latest write wins.
func (r *Repository) RateAttempt(ctx context.Context, attemptID string, rating int, isFavorite bool) error {
	return r.db.WithContext(ctx).
		Model(&models.TryOnOutfitAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]any{
			"user_rating": rating,
			"is_favorite": isFavorite,
		}).Error
}

// PreferencesByUser loads the per-user preferences row, nil when absent.
func (r *Repository) PreferencesByUser(ctx context.Context, userID uuid.UUID) (*models.UserTryOnPreferences, error) {
	var prefs models.UserTryOnPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// UpsertPreferences writes the full preferences row keyed by user.
func (r *Repository) UpsertPreferences(ctx context.Context, prefs *models.UserTryOnPreferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"default_view_mode",
				"auto_save_results",
				"share_anonymously",
				"enabled_features",
				"processing_quality",
				"max_processing_time",
				"store_images",
				"allow_analytics",
				"updated_at",
			}),
		}).
		Create(prefs).Error
}

// AvailableFeatures lists registry entries currently served to clients.
func (r *Repository) AvailableFeatures(ctx context.Context) ([]models.TryOnFeature, error) {
	var features []models.TryOnFeature
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

// SeedFeatures inserts the default feature registry, leaving existing rows
// alone so operator edits survive restarts.
func (r *Repository) SeedFeatures(ctx context.Context, features []models.TryOnFeature) error {
	if len(features) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&features).Error
}

// InsertAnalytics appends one processing event row.
func (r *Repository) InsertAnalytics(ctx context.Context, row *models.TryOnAnalytics) error {
	return r.db.WithContext(ctx).Create(row).Error
}
