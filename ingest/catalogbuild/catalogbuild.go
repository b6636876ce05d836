// Package catalogbuild emits the categories.json artifact: the fixed
// taxonomy with per-category document counts computed from a documents
// manifest (§4, §6 artifact 4).
package catalogbuild

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aqua777/campus-rag-core/model"
)

// categoriesFile is the §6 artifact 4 (categories.json) wire shape.
type categoriesFile struct {
	Version         string          `json:"version"`
	GeneratedAt     time.Time       `json:"generated_at"`
	TotalCategories int             `json:"total_categories"`
	Categories      []model.Category `json:"categories"`
}

// Build computes document_count per category (§3 invariant:
// document_count[c] = |{d : d.category = c}|) and returns the full
// category list, including uncategorized only if it has members.
func Build(documents []model.Document) []model.Category {
	counts := make(map[model.CategoryID]int)
	for _, d := range documents {
		counts[d.Category]++
	}

	categories := make([]model.Category, 0, len(model.CategoryOrder)+1)
	for _, id := range model.CategoryOrder {
		def := model.CategoryDefinition(id)
		def.DocumentCount = counts[id]
		categories = append(categories, def)
	}
	if counts[model.CategoryUncategorized] > 0 {
		def := model.CategoryDefinition(model.CategoryUncategorized)
		def.DocumentCount = counts[model.CategoryUncategorized]
		categories = append(categories, def)
	}
	return categories
}

// Write builds and writes categories.json to path.
func Write(path string, documents []model.Document) error {
	categories := Build(documents)
	file := categoriesFile{
		Version:         "1.0",
		GeneratedAt:     time.Now().UTC(),
		TotalCategories: len(categories),
		Categories:      categories,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("catalogbuild: marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
