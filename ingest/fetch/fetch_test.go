package fetch

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/model"
)

type FetchInternalsTestSuite struct {
	suite.Suite
}

func (s *FetchInternalsTestSuite) TestSanitizeFilenameReplacesUnsafeChars() {
	got := sanitizeFilename(`a:b*c?d"e<f>g|h`)
	s.NotContains(got, ":")
	s.NotContains(got, "*")
	s.NotContains(got, "?")
}

func (s *FetchInternalsTestSuite) TestSanitizeFilenameCollapsesWhitespace() {
	got := sanitizeFilename("a   b\tc")
	s.Equal("a b c", got)
}

func (s *FetchInternalsTestSuite) TestSanitizeFilenameTruncatesLongNames() {
	long := make([]rune, 500)
	for i := range long {
		long[i] = 'a'
	}
	got := sanitizeFilename(string(long))
	s.LessOrEqual(len([]rune(got)), 200)
}

func (s *FetchInternalsTestSuite) TestResolveShareLinkHandlesGoogleDriveFile() {
	url, err := resolveShareLink("https://drive.google.com/file/d/abc123XYZ/view?usp=sharing")
	s.Require().NoError(err)
	s.Contains(url, "abc123XYZ")
}

func (s *FetchInternalsTestSuite) TestResolveShareLinkHandlesOpenIDParam() {
	url, err := resolveShareLink("https://drive.google.com/open?id=abc123XYZ")
	s.Require().NoError(err)
	s.Contains(url, "abc123XYZ")
}

func (s *FetchInternalsTestSuite) TestResolveShareLinkRejectsUnknownFormat() {
	_, err := resolveShareLink("https://example.com/not-a-share-link")
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrUnknownShareLink)
}

func (s *FetchInternalsTestSuite) TestIsShareLinkDetectsDriveHost() {
	s.True(isShareLink("https://drive.google.com/file/d/abc/view"))
	s.False(isShareLink("https://example.edu/regulation.pdf"))
}

func (s *FetchInternalsTestSuite) TestSniffTypeDetectsPDFMagicBytes() {
	pdfMagic := []byte("%PDF-1.4\n...")
	s.Equal(model.DocumentTypePDF, sniffType(pdfMagic))
}

func (s *FetchInternalsTestSuite) TestSniffTypeUnknownForPlainText() {
	s.Equal(model.DocumentTypeUnknown, sniffType([]byte("plain text document")))
}

func TestFetchInternalsTestSuite(t *testing.T) {
	suite.Run(t, new(FetchInternalsTestSuite))
}
