package rag_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/catalog"
	"github.com/aqua777/campus-rag-core/collab/collabtest"
	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/prompt"
	"github.com/aqua777/campus-rag-core/rag"
	"github.com/aqua777/campus-rag-core/vectorstore"
)

func buildStoreWithChunks(t *testing.T, chunks ...model.EmbeddedChunk) *vectorstore.Store {
	t.Helper()
	file := model.EmbeddingsFile{EmbeddingDim: len(chunks[0].Embedding), Chunks: chunks}
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	store, err := vectorstore.Load(data)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func manifestWithDocs(docs ...model.Document) model.DocumentsManifest {
	return model.DocumentsManifest{Documents: docs}
}

type RAGPipelineTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RAGPipelineTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RAGPipelineTestSuite) TestAnswerReturnsNoResultsWhenFilterExcludesEverything() {
	store := buildStoreWithChunks(s.T(), model.EmbeddedChunk{
		Chunk:     model.Chunk{ChunkID: "c0", DocumentID: "d0", Text: "irrelevant"},
		Embedding: []float32{1, 0, 0, 0},
	})
	cat := catalog.New(manifestWithDocs())
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	generator := &collabtest.Generator{Response: "Assistant: unused"}
	builder := prompt.New(collabtest.TokenCounter{})
	clock := &collabtest.Clock{Millis: 0}

	pipeline := rag.New(embedder, generator, store, cat, builder, clock, nil)
	result := pipeline.Answer(s.ctx, "question", rag.Options{Filter: vectorstore.Filter{DocumentID: "missing"}})
	s.Equal(rag.ModeNoResults, result.Mode)
	s.NotEmpty(result.Answer)
}

func (s *RAGPipelineTestSuite) TestAnswerBuildsGroundedAnswerAndDedupsSources() {
	doc := model.Document{ID: "d0", Title: "Academic Integrity Policy"}
	store := buildStoreWithChunks(s.T(),
		model.EmbeddedChunk{Chunk: model.Chunk{ChunkID: "d0_chunk_0", DocumentID: "d0", Text: "first chunk"}, Embedding: []float32{1, 0, 0, 0}},
		model.EmbeddedChunk{Chunk: model.Chunk{ChunkID: "d0_chunk_1", DocumentID: "d0", Text: "second chunk"}, Embedding: []float32{1, 0, 0, 0}},
	)
	cat := catalog.New(manifestWithDocs(doc))
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	generator := &collabtest.Generator{Response: "Assistant: here is the answer.\nUser: thanks"}
	builder := prompt.New(collabtest.TokenCounter{})
	clock := &collabtest.Clock{Millis: 5}

	pipeline := rag.New(embedder, generator, store, cat, builder, clock, nil)
	result := pipeline.Answer(s.ctx, "question", rag.Options{TopK: 2})

	s.Equal(rag.ModeRAG, result.Mode)
	s.Equal("here is the answer.", result.Answer)
	s.Require().Len(result.Sources, 1)
	s.Equal("d0", result.Sources[0].Document.ID)
	s.InDelta(1.0, result.AvgSimilarity, 1e-6)
	s.Contains(generator.LastPrompt, "[Source 1]:")
}

func (s *RAGPipelineTestSuite) TestAnswerFoldsEmbedderErrorIntoErrorResult() {
	store := buildStoreWithChunks(s.T(), model.EmbeddedChunk{
		Chunk:     model.Chunk{ChunkID: "c0", DocumentID: "d0", Text: "x"},
		Embedding: []float32{1, 0, 0, 0},
	})
	cat := catalog.New(manifestWithDocs())
	embedder := &collabtest.Embedder{Err: errBoom}
	generator := &collabtest.Generator{}
	builder := prompt.New(collabtest.TokenCounter{})
	clock := &collabtest.Clock{}

	pipeline := rag.New(embedder, generator, store, cat, builder, clock, nil)
	result := pipeline.Answer(s.ctx, "question", rag.Options{})
	s.Equal(rag.ModeError, result.Mode)
	s.NotEmpty(result.Error)
}

func (s *RAGPipelineTestSuite) TestFindSimilarDocumentsExcludesSource() {
	docA := model.Document{ID: "docA", Title: "A"}
	docB := model.Document{ID: "docB", Title: "B"}
	store := buildStoreWithChunks(s.T(),
		model.EmbeddedChunk{Chunk: model.Chunk{ChunkID: "docA_chunk_0", DocumentID: "docA", Text: "a"}, Embedding: []float32{1, 0, 0, 0}},
		model.EmbeddedChunk{Chunk: model.Chunk{ChunkID: "docB_chunk_0", DocumentID: "docB", Text: "b"}, Embedding: []float32{1, 0, 0, 0}},
	)
	cat := catalog.New(manifestWithDocs(docA, docB))
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	generator := &collabtest.Generator{}
	builder := prompt.New(collabtest.TokenCounter{})
	clock := &collabtest.Clock{}

	pipeline := rag.New(embedder, generator, store, cat, builder, clock, nil)
	docs, err := pipeline.FindSimilarDocuments("docA", 5)
	s.Require().NoError(err)
	for _, d := range docs {
		s.NotEqual("docA", d.ID)
	}
}

func TestRAGPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(RAGPipelineTestSuite))
}

var errBoom = fakeErr("embedder down")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
