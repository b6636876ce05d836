package chunk_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/ingest/chunk"
	"github.com/aqua777/campus-rag-core/model"
)

type ChunkerTestSuite struct {
	suite.Suite
	chunker *chunk.Chunker
	doc     model.Document
}

func (s *ChunkerTestSuite) SetupTest() {
	s.chunker = chunk.New(chunk.DefaultConfig(), nil)
	s.doc = model.Document{ID: "doc_1", Title: "Test Regulation", Category: model.CategoryGeneralOperations}
}

func (s *ChunkerTestSuite) TestEmptyTextProducesNoChunks() {
	chunks := s.chunker.Chunk(s.doc, "")
	s.Empty(chunks)
}

func (s *ChunkerTestSuite) TestSingleShortSentenceBelowMinIsDropped() {
	chunks := s.chunker.Chunk(s.doc, "Too short.")
	s.Empty(chunks)
}

func (s *ChunkerTestSuite) TestSingleLongSentenceEmitsOneChunk() {
	text := strings.Repeat("word ", 200) + "end."
	chunks := s.chunker.Chunk(s.doc, text)
	s.Require().Len(chunks, 1)
	s.Equal("doc_1_chunk_0", chunks[0].ChunkID)
	s.Equal(0, chunks[0].ChunkIndex)
}

func (s *ChunkerTestSuite) TestChunkIndexIsContiguous() {
	sentence := strings.Repeat("word ", 40) + "done."
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(sentence)
		sb.WriteString(" ")
	}
	chunks := s.chunker.Chunk(s.doc, sb.String())
	s.Require().NotEmpty(chunks)
	for i, c := range chunks {
		s.Equal(i, c.ChunkIndex)
		s.Equal(s.doc.ID, c.DocumentID)
	}
}

func (s *ChunkerTestSuite) TestOverlapSeedsFromPreviousChunkTail() {
	sentence := strings.Repeat("alpha ", 40) + "first."
	second := strings.Repeat("beta ", 40) + "second."
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(sentence)
		sb.WriteString(" ")
	}
	sb.WriteString(second)

	chunks := s.chunker.Chunk(s.doc, sb.String())
	s.Require().GreaterOrEqual(len(chunks), 2)

	firstWords := strings.Fields(chunks[0].Text)
	tail := strings.Join(firstWords[len(firstWords)-50:], " ")
	s.True(strings.HasPrefix(chunks[1].Text, tail+" "))
}

func (s *ChunkerTestSuite) TestMetadataCarriesThroughAllChunks() {
	s.doc.Filename = "reg.pdf"
	s.doc.SourceURL = "https://example.edu/reg.pdf"
	text := strings.Repeat("word ", 200) + "end."
	chunks := s.chunker.Chunk(s.doc, text)
	s.Require().NotEmpty(chunks)
	for _, c := range chunks {
		s.Equal(s.doc.Title, c.Metadata.DocumentTitle)
		s.Equal(s.doc.Filename, c.Metadata.DocumentFilename)
		s.Equal(s.doc.SourceURL, c.Metadata.SourceURL)
	}
}

func TestChunkerTestSuite(t *testing.T) {
	suite.Run(t, new(ChunkerTestSuite))
}
