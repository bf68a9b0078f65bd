package usecase

import (
	"strings"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// ResolveCategory finds the first category whose name matches label
// case-insensitively or whose slug equals label exactly.
func ResolveCategory(label string, categories []entity.Category) (string, bool) {
	if label == "" {
		return "", false
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, label) || c.Slug == label {
			return c.ID, true
		}
	}
	return "", false
}

// CategoryIDs payload form of ResolveCategory: one id or an empty list
func CategoryIDs(label string, categories []entity.Category) []string {
	if id, ok := ResolveCategory(label, categories); ok {
		return []string{id}
	}
	return []string{}
}
