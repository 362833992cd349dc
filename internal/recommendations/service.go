package recommendations

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/stablehash"
	"github.com/google/uuid"
)

// maxSuggestions bounds how many wardrobe-backed suggestions one response
// carries.
const maxSuggestions = 3

type wardrobeReader interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.ClothingItem, error)
	ComplementaryItems(ctx context.Context, userID uuid.UUID, category enums.ClothingCategory, excludeID uuid.UUID, limit int) ([]models.ClothingItem, error)
	StylePreference(ctx context.Context, userID uuid.UUID) (*models.StylePreference, error)
}

type styleProfiler interface {
	StyleProfile(ctx context.Context, userID uuid.UUID, styleTags []string) (*ml.StyleEnrichment, error)
}

// Service assembles personalized outfit suggestions. Output is pure in
// (wardrobe snapshot, request context, limit); no random tie-breaks.
type Service struct {
	wardrobe wardrobeReader
	profiler styleProfiler
	cache    *cache.Layer
	logg     *logger.Logger
}

func NewService(wardrobe wardrobeReader, profiler styleProfiler, cacheLayer *cache.Layer, logg *logger.Logger) *Service {
	return &Service{wardrobe: wardrobe, profiler: profiler, cache: cacheLayer, logg: logg}
}

// GetOutfitRecommendations builds up to limit suggestions from the user's
// wardrobe, falling back to a starter set when the wardrobe is empty.
func (s *Service) GetOutfitRecommendations(ctx context.Context, userID uuid.UUID, reqContext map[string]string, limit int) (*Response, error) {
	if limit <= 0 {
		limit = maxSuggestions
	}

	key := cache.BuildKey(cache.NamespaceRecommendations,
		cache.P("user_id", userID.String()),
		cache.P("context", contextHash(reqContext)),
		cache.P("limit", limit),
	)
	var cached Response
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	items, err := s.wardrobe.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading wardrobe")
	}

	enrichment := s.enrich(ctx, userID, items)
	weather := weatherFrom(reqContext)

	var suggestions []Suggestion
	if len(items) == 0 {
		suggestions = fallbackSuggestions(limit, weather)
	} else {
		suggestions, err = s.assemble(ctx, userID, items, reqContext, weather, limit, enrichment)
		if err != nil {
			return nil, err
		}
	}

	pref, err := s.wardrobe.StylePreference(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading style preference")
	}

	response := &Response{
		Suggestions: suggestions,
		StyleFocus:  styleFocus(pref, enrichment),
	}
	s.cache.Set(ctx, key, response)
	return response, nil
}

// enrich asks the style model for hints; any fault is treated as empty
// enrichment.
func (s *Service) enrich(ctx context.Context, userID uuid.UUID, items []models.ClothingItem) *ml.StyleEnrichment {
	var tags []string
	for _, item := range items {
		tags = append(tags, item.StyleTags...)
	}

	enrichment, err := s.profiler.StyleProfile(ctx, userID, tags)
	if err != nil {
		s.logg.Debug(s.logg.WithField(ctx, "reason", err.Error()), "style enrichment unavailable")
		return nil
	}
	return enrichment
}

func (s *Service) assemble(ctx context.Context, userID uuid.UUID, items []models.ClothingItem, reqContext map[string]string, weather Weather, limit int, enrichment *ml.StyleEnrichment) ([]Suggestion, error) {
	count := limit
	if len(items) < count {
		count = len(items)
	}
	if count > maxSuggestions {
		count = maxSuggestions
	}

	suggestions := make([]Suggestion, 0, count)
	for i := 0; i < count; i++ {
		base := items[i]

		outfitItems := []SuggestionItem{toSuggestionItem(base)}
		if paired, ok := base.Category.PairedCategory(); ok {
			complements, err := s.wardrobe.ComplementaryItems(ctx, userID, paired, base.ID, 2)
			if err != nil {
				return nil, errors.Wrap(errors.CodeInternal, err, "loading complementary items")
			}
			for _, c := range complements {
				outfitItems = append(outfitItems, toSuggestionItem(c))
			}
		}

		suggestions = append(suggestions, Suggestion{
			ID:              fmt.Sprintf("outfit-%s-%d", base.ID, i),
			Name:            fmt.Sprintf("%s Combo", base.Name),
			Occasion:        occasionFor(base, reqContext),
			Items:           outfitItems,
			MatchPercentage: 0.85 + 0.02*float64(i),
			Description:     describe(outfitItems, enrichment),
			Weather:         weather,
			IsFavorite:      false,
		})
	}
	return suggestions, nil
}

func toSuggestionItem(item models.ClothingItem) SuggestionItem {
	out := SuggestionItem{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		ImageURL: item.ImageURL,
	}
	if item.Color != nil {
		out.Color = *item.Color
	}
	return out
}

// occasionFor defaults to the request context, then "casual"; a strong
// style tag on the base item overrides both.
func occasionFor(base models.ClothingItem, reqContext map[string]string) string {
	occasion := "casual"
	if v := strings.TrimSpace(reqContext["occasion"]); v != "" {
		occasion = v
	}
	for _, tag := range base.StyleTags {
		switch strings.ToLower(tag) {
		case "formal", "business", "sporty":
			return strings.ToLower(tag)
		}
	}
	return occasion
}

func describe(items []SuggestionItem, enrichment *ml.StyleEnrichment) string {
	categories := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		c := string(item.Category)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}

	desc := fmt.Sprintf("A coordinated look built around %s.", strings.Join(categories, " and "))
	if enrichment != nil && len(enrichment.Archetypes) > 0 {
		desc += fmt.Sprintf(" Matches your %s style.", enrichment.Archetypes[0])
	}
	return desc
}

// fallbackSuggestions keeps the surface useful for a brand-new wardrobe.
func fallbackSuggestions(limit int, weather Weather) []Suggestion {
	starters := []struct {
		name        string
		occasion    string
		description string
	}{
		{"Everyday Essentials", "casual", "A simple tee-and-denim baseline that works anywhere."},
		{"Smart Casual Starter", "business", "A collared shirt with tailored trousers for low-effort polish."},
		{"Weekend Layers", "casual", "Light layers that adapt from morning coffee to evening plans."},
	}

	count := limit
	if count > len(starters) {
		count = len(starters)
	}

	suggestions := make([]Suggestion, 0, count)
	for i := 0; i < count; i++ {
		suggestions = append(suggestions, Suggestion{
			ID:              fmt.Sprintf("starter-%d", i),
			Name:            starters[i].name,
			Occasion:        starters[i].occasion,
			Items:           []SuggestionItem{},
			MatchPercentage: 0.80 + 0.03*float64(i),
			Description:     starters[i].description,
			Weather:         weather,
		})
	}
	return suggestions
}

// styleFocus composes the short guidance block, personalized by the first
// two preferred colors when the profile has them.
func styleFocus(pref *models.StylePreference, enrichment *ml.StyleEnrichment) StyleFocus {
	message := "Build around versatile staples you already own."
	if pref != nil && len(pref.PreferredColors) > 0 {
		colors := pref.PreferredColors
		if len(colors) > 2 {
			colors = colors[:2]
		}
		message = fmt.Sprintf("Lean into your %s pieces for a cohesive palette.", strings.Join(colors, " and "))
	} else if enrichment != nil && len(enrichment.Archetypes) > 0 {
		message = fmt.Sprintf("Your %s instincts are working; keep silhouettes consistent.", enrichment.Archetypes[0])
	}

	return StyleFocus{
		Message: message,
		Recommendations: []string{
			"Anchor each outfit with one statement piece",
			"Repeat a single accent color across the look",
			"Check the fit notes from your latest try-on",
		},
	}
}

func weatherFrom(reqContext map[string]string) Weather {
	weather := defaultWeather()
	if condition := strings.TrimSpace(reqContext["weather"]); condition != "" {
		weather.Condition = condition
	}
	return weather
}

// contextHash collapses the request context into one stable key dimension.
func contextHash(reqContext map[string]string) string {
	if len(reqContext) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(reqContext))
	for k := range reqContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(reqContext[k])
	}
	return strconv.FormatUint(stablehash.Hash(b.String()), 16)
}
