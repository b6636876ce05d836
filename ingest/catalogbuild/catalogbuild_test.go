package catalogbuild_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/ingest/catalogbuild"
	"github.com/aqua777/campus-rag-core/model"
)

type CatalogBuildTestSuite struct {
	suite.Suite
}

func (s *CatalogBuildTestSuite) TestDocumentCountMatchesMembership() {
	docs := []model.Document{
		{ID: "d1", Category: model.CategoryGeneralOperations},
		{ID: "d2", Category: model.CategoryGeneralOperations},
		{ID: "d3", Category: model.CategorySafety},
	}
	categories := catalogbuild.Build(docs)

	counts := map[model.CategoryID]int{}
	for _, c := range categories {
		counts[c.ID] = c.DocumentCount
	}
	s.Equal(2, counts[model.CategoryGeneralOperations])
	s.Equal(1, counts[model.CategorySafety])
	for _, id := range model.CategoryOrder {
		if id != model.CategoryGeneralOperations && id != model.CategorySafety {
			s.Equal(0, counts[id])
		}
	}
}

func (s *CatalogBuildTestSuite) TestUncategorizedOmittedWhenEmpty() {
	docs := []model.Document{{ID: "d1", Category: model.CategoryGeneralOperations}}
	categories := catalogbuild.Build(docs)
	for _, c := range categories {
		s.NotEqual(model.CategoryUncategorized, c.ID)
	}
}

func (s *CatalogBuildTestSuite) TestUncategorizedIncludedWhenNonEmpty() {
	docs := []model.Document{{ID: "d1", Category: model.CategoryUncategorized}}
	categories := catalogbuild.Build(docs)
	found := false
	for _, c := range categories {
		if c.ID == model.CategoryUncategorized {
			found = true
			s.Equal(1, c.DocumentCount)
		}
	}
	s.True(found)
}

func TestCatalogBuildTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogBuildTestSuite))
}
