package vectorstore_test

import (
	"compress/gzip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/vectorstore"
)

func unitVector(dim, axis int) []float32 {
	v := make([]float32, dim)
	v[axis] = 1
	return v
}

func chunkFor(id string, vec []float32) model.EmbeddedChunk {
	return model.EmbeddedChunk{
		Chunk: model.Chunk{
			ChunkID:    id,
			DocumentID: "doc_" + id,
			Text:       "text for " + id,
			ChunkIndex: 0,
		},
		Embedding: vec,
	}
}

func buildFile(chunks ...model.EmbeddedChunk) model.EmbeddingsFile {
	return model.EmbeddingsFile{
		Version:      "1.0",
		Model:        "test-model",
		EmbeddingDim: len(chunks[0].Embedding),
		TotalChunks:  len(chunks),
		Chunks:       chunks,
	}
}

type VectorStoreTestSuite struct {
	suite.Suite
}

func (s *VectorStoreTestSuite) TestSearchTieBreakByStorageOrder() {
	dim := 4
	file := buildFile(
		chunkFor("chunk_0", unitVector(dim, 0)),
		chunkFor("chunk_1", unitVector(dim, 1)),
		chunkFor("chunk_2", unitVector(dim, 2)),
	)
	data, err := json.Marshal(file)
	s.Require().NoError(err)

	store, err := vectorstore.Load(data)
	s.Require().NoError(err)
	s.Equal(3, store.Len())

	results, err := store.Search(unitVector(dim, 0), 2, vectorstore.Filter{}, vectorstore.ScoreDot)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("chunk_0", results[0].Chunk.ChunkID)
	s.InDelta(1.0, results[0].Score, 1e-6)
	// chunk_1 and chunk_2 both score 0; chunk_1 was stored first and must win.
	s.Equal("chunk_1", results[1].Chunk.ChunkID)
	s.InDelta(0.0, results[1].Score, 1e-6)
}

func (s *VectorStoreTestSuite) TestLoadRejectsNonNormalizedEmbedding() {
	file := buildFile(chunkFor("chunk_0", []float32{1, 1, 0, 0}))
	data, err := json.Marshal(file)
	s.Require().NoError(err)

	_, err = vectorstore.Load(data)
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrIndexCorrupt)
}

func (s *VectorStoreTestSuite) TestLoadRejectsDimensionMismatch() {
	file := buildFile(chunkFor("chunk_0", unitVector(4, 0)))
	file.Chunks[0].Embedding = []float32{1, 0, 0}
	data, err := json.Marshal(file)
	s.Require().NoError(err)

	_, err = vectorstore.Load(data)
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrIndexCorrupt)
}

func (s *VectorStoreTestSuite) TestSearchRejectsQueryDimensionMismatch() {
	file := buildFile(chunkFor("chunk_0", unitVector(4, 0)))
	data, err := json.Marshal(file)
	s.Require().NoError(err)
	store, err := vectorstore.Load(data)
	s.Require().NoError(err)

	_, err = store.Search([]float32{1, 0}, 1, vectorstore.Filter{}, vectorstore.ScoreDot)
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrDimensionMismatch)
}

func (s *VectorStoreTestSuite) TestSearchAppliesCategoryFilter() {
	dim := 3
	c0 := chunkFor("chunk_0", unitVector(dim, 0))
	c0.Category = model.CategoryID("admissions")
	c1 := chunkFor("chunk_1", unitVector(dim, 0))
	c1.Category = model.CategoryID("grading")

	file := buildFile(c0, c1)
	data, err := json.Marshal(file)
	s.Require().NoError(err)
	store, err := vectorstore.Load(data)
	s.Require().NoError(err)

	results, err := store.Search(unitVector(dim, 0), 5, vectorstore.Filter{Category: "grading"}, vectorstore.ScoreDot)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("chunk_1", results[0].Chunk.ChunkID)
}

func (s *VectorStoreTestSuite) TestLoadGzipRoundTrip() {
	file := buildFile(chunkFor("chunk_0", unitVector(4, 0)))
	raw, err := json.Marshal(file)
	s.Require().NoError(err)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write(raw)
	s.Require().NoError(err)
	s.Require().NoError(gz.Close())

	store, err := vectorstore.LoadGzip(buf.Bytes())
	s.Require().NoError(err)
	s.Equal(1, store.Len())
}

func (s *VectorStoreTestSuite) TestEmptyIndexSearchReturnsEmpty() {
	file := model.EmbeddingsFile{EmbeddingDim: 4}
	data, err := json.Marshal(file)
	s.Require().NoError(err)
	store, err := vectorstore.Load(data)
	s.Require().NoError(err)
	s.Equal(0, store.Len())

	results, err := store.Search(unitVector(4, 0), 5, vectorstore.Filter{}, vectorstore.ScoreDot)
	s.Require().NoError(err)
	s.Empty(results)
}

func TestVectorStoreTestSuite(t *testing.T) {
	suite.Run(t, new(VectorStoreTestSuite))
}
