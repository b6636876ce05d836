package extract_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/ingest/extract"
)

type NormalizeTestSuite struct {
	suite.Suite
}

func (s *NormalizeTestSuite) TestCollapsesSingleWhitespaceRunToSpace() {
	s.Equal("A B", extract.Normalize("A  B"))
}

func (s *NormalizeTestSuite) TestThreeOrMoreNewlinesBecomeParagraphBreak() {
	s.Equal("A\n\nB", extract.Normalize("A  \n\n\n\nB"))
}

func (s *NormalizeTestSuite) TestTwoNewlinesStayAsSpace() {
	s.Equal("A B", extract.Normalize("A\n\nB"))
}

func (s *NormalizeTestSuite) TestTrimsLeadingAndTrailingWhitespace() {
	s.Equal("A B", extract.Normalize("  A B  "))
}

func (s *NormalizeTestSuite) TestEmptyInputYieldsEmptyOutput() {
	s.Equal("", extract.Normalize("   \n\n\n   "))
}

func (s *NormalizeTestSuite) TestMixedTabsAndSpacesCollapse() {
	s.Equal("A B", extract.Normalize("A \t \t B"))
}

func TestNormalizeTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}
