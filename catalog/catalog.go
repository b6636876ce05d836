// Package catalog provides constant-time Document lookup by id and by
// category, localized category names, substring search, and corpus
// statistics (§4.9). It is built once from the documents manifest and
// never mutated at runtime.
package catalog

import (
	"strings"

	"github.com/aqua777/campus-rag-core/model"
)

// Statistics is the §4.9 statistics summary.
type Statistics struct {
	Total         int
	ByLanguage    map[model.Language]int
	ByCategory    map[model.CategoryID]int
}

// Catalog is the read-only runtime DocumentCatalog.
type Catalog struct {
	byID       map[string]model.Document
	byCategory map[model.CategoryID][]model.Document
	categories map[model.CategoryID]model.Category
	order      []model.Document // insertion order, for stable iteration
}

// New builds a Catalog from a parsed documents manifest.
func New(manifest model.DocumentsManifest) *Catalog {
	c := &Catalog{
		byID:       make(map[string]model.Document, len(manifest.Documents)),
		byCategory: make(map[model.CategoryID][]model.Document),
		categories: make(map[model.CategoryID]model.Category, len(manifest.Categories)),
		order:      manifest.Documents,
	}
	for _, cat := range manifest.Categories {
		c.categories[cat.ID] = cat
	}
	for _, doc := range manifest.Documents {
		c.byID[doc.ID] = doc
		c.byCategory[doc.Category] = append(c.byCategory[doc.Category], doc)
	}
	return c
}

// ByID returns the document with the given id, if present.
func (c *Catalog) ByID(documentID string) (model.Document, bool) {
	d, ok := c.byID[documentID]
	return d, ok
}

// ByCategory returns all documents in category, in ingestion order.
func (c *Catalog) ByCategory(category model.CategoryID) []model.Document {
	return c.byCategory[category]
}

// CategoryName returns the bilingual label for category in the given
// language, falling back to the raw id if the category is unknown.
func (c *Catalog) CategoryName(category model.CategoryID, lang model.Language) string {
	cat, ok := c.categories[category]
	if !ok {
		return string(category)
	}
	if lang == model.LanguageUK {
		return cat.NameUK
	}
	return cat.NameEN
}

// Search performs a case-insensitive substring match over title and
// filename, optionally restricted to lang.
func (c *Catalog) Search(query string, lang model.Language) []model.Document {
	q := strings.ToLower(query)
	var out []model.Document
	for _, doc := range c.order {
		if lang != "" && doc.Language != lang {
			continue
		}
		if strings.Contains(strings.ToLower(doc.Title), q) || strings.Contains(strings.ToLower(doc.Filename), q) {
			out = append(out, doc)
		}
	}
	return out
}

// Stats computes corpus-wide totals (§4.9).
func (c *Catalog) Stats() Statistics {
	stats := Statistics{
		ByLanguage: make(map[model.Language]int),
		ByCategory: make(map[model.CategoryID]int),
	}
	for _, doc := range c.order {
		stats.Total++
		stats.ByLanguage[doc.Language]++
		stats.ByCategory[doc.Category]++
	}
	return stats
}
