package wardrobe

import (
	"context"

	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxWardrobeItems bounds how much of a wardrobe one recommendation pass
// considers.
const maxWardrobeItems = 50

// Repository reads wardrobe state for the recommendation and try-on flows.
// Wardrobe CRUD is owned by the external account surface; everything here is
// read-only and always filters soft-deleted rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveByUser returns up to maxWardrobeItems active items owned by the
// user, ordered by id so repeated reads see the same snapshot order.
func (r *Repository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.ClothingItem, error) {
	var items []models.ClothingItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Limit(maxWardrobeItems).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ComplementaryItems returns up to limit active items of the given category
// owned by the user, excluding the base item.
func (r *Repository) ComplementaryItems(ctx context.Context, userID uuid.UUID, category enums.ClothingCategory, excludeID uuid.UUID, limit int) ([]models.ClothingItem, error) {
	var items []models.ClothingItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND category = ? AND id <> ?", userID, true, category, excludeID).
		Order("id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// StylePreference loads the user's style profile; a missing row comes back
// as nil without error.
func (r *Repository) StylePreference(ctx context.Context, userID uuid.UUID) (*models.StylePreference, error) {
	var pref models.StylePreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

// Stats summarizes the active portion of a wardrobe.
type Stats struct {
	TotalItems      int64                            `json:"total_items"`
	ItemsByCategory map[enums.ClothingCategory]int64 `json:"items_by_category"`
}

// StatsByUser counts active items, total and per category.
func (r *Repository) StatsByUser(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	type row struct {
		Category enums.ClothingCategory
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.ClothingItem{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ? AND is_active = ?", userID, true).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &Stats{ItemsByCategory: make(map[enums.ClothingCategory]int64, len(rows))}
	for _, r := range rows {
		stats.ItemsByCategory[r.Category] = r.Count
		stats.TotalItems += r.Count
	}
	return stats, nil
}
