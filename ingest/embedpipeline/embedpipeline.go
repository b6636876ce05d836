// Package embedpipeline drives Chunks through an Embedder in bounded
// batches and writes the chunks and embeddings artifacts (§4.4).
package embedpipeline

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/ingest/embedpipeline/devstore"
	"github.com/aqua777/campus-rag-core/model"
)

const (
	batchSize  = 10
	yieldDelay = time.Second
)

// Driver embeds chunks sequentially in fixed-size batches, yielding
// between batches to bound peak memory (§4.4).
type Driver struct {
	embedder  collab.Embedder
	modelName string
	mirror    *devstore.Mirror
	logger    *slog.Logger
}

// New builds a Driver. mirror may be nil to skip devstore mirroring.
func New(embedder collab.Embedder, modelName string, mirror *devstore.Mirror, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{embedder: embedder, modelName: modelName, mirror: mirror, logger: logger}
}

// Run embeds every chunk in order, logging and skipping per-chunk
// failures (§4.4), and returns the resulting EmbeddedChunks in
// chunk-storage order.
func (d *Driver) Run(ctx context.Context, chunks []model.Chunk) ([]model.EmbeddedChunk, error) {
	embedded := make([]model.EmbeddedChunk, 0, len(chunks))

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		for _, c := range batch {
			vec, err := d.embedder.Embed(ctx, c.Text)
			if err != nil {
				d.logger.Warn("embedpipeline: chunk embedding failed", "chunk_id", c.ChunkID, "error", err)
				continue
			}
			ec := model.EmbeddedChunk{Chunk: c, Embedding: vec}
			embedded = append(embedded, ec)

			if d.mirror != nil {
				if err := d.mirror.Add(ctx, ec); err != nil {
					d.logger.Warn("embedpipeline: devstore mirror failed", "chunk_id", c.ChunkID, "error", err)
				}
			}
		}

		if end < len(chunks) {
			select {
			case <-ctx.Done():
				return embedded, ctx.Err()
			case <-time.After(yieldDelay):
			}
		}
	}

	return embedded, nil
}

// WriteArtifacts writes chunks.json, embeddings.json, and
// embeddings.json.gz under outputDir (§4.4, §6 artifacts 2-3).
func WriteArtifacts(outputDir string, cfg model.ChunkConfig, chunks []model.Chunk, embedded []model.EmbeddedChunk, modelName string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("embedpipeline: mkdir %s: %w", outputDir, err)
	}

	now := time.Now().UTC()

	chunksFile := model.ChunksFile{
		Version:     "1.0",
		GeneratedAt: now,
		Config:      cfg,
		TotalChunks: len(chunks),
		Chunks:      chunks,
	}
	chunksData, err := json.MarshalIndent(chunksFile, "", "  ")
	if err != nil {
		return fmt.Errorf("embedpipeline: marshal chunks.json: %w", err)
	}
	if err := writeFile(outputDir+"/chunks.json", chunksData); err != nil {
		return err
	}

	embeddingsFile := model.EmbeddingsFile{
		Version:      "1.0",
		GeneratedAt:  now,
		Model:        modelName,
		EmbeddingDim: embeddingDim(embedded),
		TotalChunks:  len(embedded),
		Config:       cfg,
		Chunks:       embedded,
	}
	// Marshal once: embeddings.json.gz must be a gzip stream of the exact
	// same JSON text as embeddings.json, not an independently re-encoded
	// (and differently formatted) copy (§6 artifact 3).
	embeddingsData, err := json.MarshalIndent(embeddingsFile, "", "  ")
	if err != nil {
		return fmt.Errorf("embedpipeline: marshal embeddings.json: %w", err)
	}
	if err := writeFile(outputDir+"/embeddings.json", embeddingsData); err != nil {
		return err
	}
	return writeGzip(outputDir+"/embeddings.json.gz", embeddingsData)
}

func embeddingDim(embedded []model.EmbeddedChunk) int {
	if len(embedded) == 0 {
		return 0
	}
	return len(embedded[0].Embedding)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("embedpipeline: write %s: %w", path, err)
	}
	return nil
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("embedpipeline: create %s: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("embedpipeline: gzip write %s: %w", path, err)
	}
	return gz.Close()
}
