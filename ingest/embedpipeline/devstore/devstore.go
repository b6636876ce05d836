// Package devstore mirrors freshly embedded chunks into an in-memory
// chromem-go collection as they're produced, so a developer can run ad
// hoc similarity queries against a partial ingestion run without
// waiting for the embeddings.json artifact to be written. It is not the
// runtime's canonical VectorStore: that one (package vectorstore) must
// do an exact, deterministic scan with storage-order tie-breaking,
// which chromem-go's own index does not guarantee.
package devstore

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/aqua777/campus-rag-core/model"
)

const collectionName = "ingest-preview"

// Mirror wraps an in-memory chromem-go collection for inspection during
// an ingestion run.
type Mirror struct {
	col *chromem.Collection
}

// New creates an empty Mirror. Chunks already carry their own
// embedding, so no embedding function is registered; Add supplies
// vectors directly.
func New() (*Mirror, error) {
	db := chromem.NewDB()
	col, err := db.CreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("devstore: create collection: %w", err)
	}
	return &Mirror{col: col}, nil
}

// Add mirrors one already-embedded chunk into the collection.
func (m *Mirror) Add(ctx context.Context, chunk model.EmbeddedChunk) error {
	doc := chromem.Document{
		ID:      chunk.ChunkID,
		Content: chunk.Text,
		Metadata: map[string]string{
			"document_id": chunk.DocumentID,
			"category":    string(chunk.Category),
			"language":    string(chunk.Language),
		},
		Embedding: chunk.Embedding,
	}
	return m.col.AddDocument(ctx, doc)
}

// Count returns the number of chunks mirrored so far.
func (m *Mirror) Count() int {
	return m.col.Count()
}

// Peek runs an ad hoc nearest-neighbor query against the mirror using a
// raw query vector, for developer inspection only.
func (m *Mirror) Peek(ctx context.Context, queryVector []float32, k int) ([]chromem.Result, error) {
	if k > m.col.Count() {
		k = m.col.Count()
	}
	if k == 0 {
		return nil, nil
	}
	return m.col.QueryEmbedding(ctx, queryVector, k, nil, nil)
}
