package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/catalog"
	"github.com/aqua777/campus-rag-core/model"
)

type CatalogTestSuite struct {
	suite.Suite
	cat *catalog.Catalog
}

func (s *CatalogTestSuite) SetupTest() {
	manifest := model.DocumentsManifest{
		Categories: []model.Category{
			{ID: model.CategoryGeneralOperations, NameEN: "General Operations", NameUK: "Загальна діяльність"},
		},
		Documents: []model.Document{
			{ID: "d1", Title: "Admissions Policy", Filename: "admissions.pdf", Category: model.CategoryGeneralOperations, Language: model.LanguageEN},
			{ID: "d2", Title: "Положення про прийом", Filename: "pryiom.pdf", Category: model.CategoryGeneralOperations, Language: model.LanguageUK},
		},
	}
	s.cat = catalog.New(manifest)
}

func (s *CatalogTestSuite) TestByIDFindsKnownDocument() {
	doc, ok := s.cat.ByID("d1")
	s.True(ok)
	s.Equal("Admissions Policy", doc.Title)
}

func (s *CatalogTestSuite) TestByIDMissesUnknownDocument() {
	_, ok := s.cat.ByID("missing")
	s.False(ok)
}

func (s *CatalogTestSuite) TestByCategoryReturnsAllMembers() {
	docs := s.cat.ByCategory(model.CategoryGeneralOperations)
	s.Len(docs, 2)
}

func (s *CatalogTestSuite) TestCategoryNameFallsBackToRawIDWhenUnknown() {
	name := s.cat.CategoryName(model.CategoryID("unknown_cat"), model.LanguageEN)
	s.Equal("unknown_cat", name)
}

func (s *CatalogTestSuite) TestCategoryNameRespectsLanguage() {
	s.Equal("General Operations", s.cat.CategoryName(model.CategoryGeneralOperations, model.LanguageEN))
	s.Equal("Загальна діяльність", s.cat.CategoryName(model.CategoryGeneralOperations, model.LanguageUK))
}

func (s *CatalogTestSuite) TestSearchIsCaseInsensitiveSubstring() {
	results := s.cat.Search("admissions", "")
	s.Require().Len(results, 1)
	s.Equal("d1", results[0].ID)
}

func (s *CatalogTestSuite) TestSearchRespectsLanguageFilter() {
	results := s.cat.Search("положення", model.LanguageEN)
	s.Empty(results)
	results = s.cat.Search("положення", model.LanguageUK)
	s.Require().Len(results, 1)
	s.Equal("d2", results[0].ID)
}

func (s *CatalogTestSuite) TestStatsCountsByLanguageAndCategory() {
	stats := s.cat.Stats()
	s.Equal(2, stats.Total)
	s.Equal(1, stats.ByLanguage[model.LanguageEN])
	s.Equal(1, stats.ByLanguage[model.LanguageUK])
	s.Equal(2, stats.ByCategory[model.CategoryGeneralOperations])
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
