package enums

import "fmt"

// Category is the catalog tag the shop API attaches to every product.
// Values are the API's own labels.
type Category string

const (
	CategorySoftSkill  Category = "софт-скил"
	CategoryHardSkill  Category = "хард-скил"
	CategoryButton     Category = "кнопка"
	CategoryAdditional Category = "дополнительное"
	CategoryOther      Category = "другое"
)

var validCategories = []Category{
	CategorySoftSkill,
	CategoryHardSkill,
	CategoryButton,
	CategoryAdditional,
	CategoryOther,
}

var categoryModifiers = map[Category]string{
	CategorySoftSkill:  "soft",
	CategoryHardSkill:  "hard",
	CategoryButton:     "button",
	CategoryAdditional: "additional",
	CategoryOther:      "other",
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Modifier returns the style modifier a surface uses to colour the category badge.
// Unknown categories fall back to "other".
func (c Category) Modifier() string {
	if m, ok := categoryModifiers[c]; ok {
		return m
	}
	return categoryModifiers[CategoryOther]
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
