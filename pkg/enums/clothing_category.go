package enums

import "fmt"

// ClothingCategory classifies a wardrobe item.
type ClothingCategory string

const (
	ClothingCategoryTops        ClothingCategory = "tops"
	ClothingCategoryBottoms     ClothingCategory = "bottoms"
	ClothingCategoryDresses     ClothingCategory = "dresses"
	ClothingCategoryOuterwear   ClothingCategory = "outerwear"
	ClothingCategoryShoes       ClothingCategory = "shoes"
	ClothingCategoryAccessories ClothingCategory = "accessories"
	ClothingCategoryUnderwear   ClothingCategory = "underwear"
	ClothingCategorySwimwear    ClothingCategory = "swimwear"
	ClothingCategoryActivewear  ClothingCategory = "activewear"
	ClothingCategoryFormalwear  ClothingCategory = "formalwear"
)

var validClothingCategories = []ClothingCategory{
	ClothingCategoryTops,
	ClothingCategoryBottoms,
	ClothingCategoryDresses,
	ClothingCategoryOuterwear,
	ClothingCategoryShoes,
	ClothingCategoryAccessories,
	ClothingCategoryUnderwear,
	ClothingCategorySwimwear,
	ClothingCategoryActivewear,
	ClothingCategoryFormalwear,
}

// String implements fmt.Stringer.
func (c ClothingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ClothingCategory.
func (c ClothingCategory) IsValid() bool {
	for _, candidate := range validClothingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseClothingCategory converts raw input into a ClothingCategory.
func ParseClothingCategory(value string) (ClothingCategory, error) {
	for _, candidate := range validClothingCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid clothing category %q", value)
}

// PairedCategory returns the complementary category used when assembling an
// outfit around a base item, and whether a pairing rule exists.
func (c ClothingCategory) PairedCategory() (ClothingCategory, bool) {
	switch c {
	case ClothingCategoryTops:
		return ClothingCategoryBottoms, true
	case ClothingCategoryBottoms:
		return ClothingCategoryTops, true
	case ClothingCategoryDresses:
		return ClothingCategoryOuterwear, true
	}
	return "", false
}
