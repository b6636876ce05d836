package router_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/collab/collabtest"
	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/router"
	"github.com/aqua777/campus-rag-core/vectorstore"
)

func buildStore(t *testing.T, score float32) *vectorstore.Store {
	t.Helper()
	dim := 4
	hit := make([]float32, dim)
	hit[0] = score
	hit[1] = sqrtComplement(score)

	file := model.EmbeddingsFile{
		EmbeddingDim: dim,
		Chunks: []model.EmbeddedChunk{
			{
				Chunk:     model.Chunk{ChunkID: "c0", DocumentID: "d0", Text: "hit"},
				Embedding: hit,
			},
		},
	}
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

// sqrtComplement returns the value needed in the second axis to keep the
// vector unit-norm given a first-axis value of score.
func sqrtComplement(score float32) float32 {
	rem := 1 - float64(score)*float64(score)
	if rem < 0 {
		rem = 0
	}
	return float32(sqrt(rem))
}

func sqrt(x float64) float64 {
	if x == 0 {
		return 0
	}
	z := x
	for i := 0; i < 40; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

type RouterTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RouterTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RouterTestSuite) TestForcedModeOverrides() {
	store := buildStore(s.T(), 1.0)
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	r := router.New(embedder, store, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "anything", router.ModeGeneral)
	s.Equal(router.ModeGeneral, decision.Mode)
	s.Equal(1.0, decision.Confidence)
	s.Equal("forced", decision.Reason)
}

func (s *RouterTestSuite) TestEmptyIndexAlwaysGeneral() {
	empty, err := vectorstore.Load([]byte(`{"embedding_dim":4,"chunks":[]}`))
	s.Require().NoError(err)
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	r := router.New(embedder, empty, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "question", "")
	s.Equal(router.ModeGeneral, decision.Mode)
	s.Equal(1.0, decision.Confidence)
	s.Equal("empty_index", decision.Reason)
}

func (s *RouterTestSuite) TestAboveHighThresholdRoutesToRAG() {
	store := buildStore(s.T(), 0.8)
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	r := router.New(embedder, store, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "question", "")
	s.Equal(router.ModeRAG, decision.Mode)
	s.InDelta(0.8, decision.Confidence, 1e-3)
}

func (s *RouterTestSuite) TestBetweenThresholdsDowngradesWithComplementConfidence() {
	store := buildStore(s.T(), 0.55)
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	r := router.New(embedder, store, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "question", "")
	s.Equal(router.ModeGeneral, decision.Mode)
	s.InDelta(0.45, decision.Confidence, 1e-3)
}

func (s *RouterTestSuite) TestBelowLowThresholdGeneralFullConfidence() {
	store := buildStore(s.T(), 0.1)
	embedder := &collabtest.Embedder{Vector: []float32{1, 0, 0, 0}}
	r := router.New(embedder, store, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "question", "")
	s.Equal(router.ModeGeneral, decision.Mode)
	s.Equal(1.0, decision.Confidence)
}

func (s *RouterTestSuite) TestEmbedderErrorDowngradesToGeneral() {
	store := buildStore(s.T(), 0.8)
	embedder := &collabtest.Embedder{Err: assertErr}
	r := router.New(embedder, store, router.DefaultThresholds(), nil)

	decision := r.Route(s.ctx, "question", "")
	s.Equal(router.ModeGeneral, decision.Mode)
	s.Equal(0.5, decision.Confidence)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

var assertErr = fakeErr("embedder unavailable")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
