package model

import "time"

// ChunkMetadata is the minimal document metadata copy carried on every
// Chunk (§3), avoiding a full Document lookup for display purposes.
type ChunkMetadata struct {
	DocumentTitle    string `json:"document_title"`
	DocumentFilename string `json:"document_filename"`
	SourceURL        string `json:"source_url"`
}

// Chunk is a sentence-aligned text window produced by the Chunker (§3,
// §4.3). It is read-only once emitted.
type Chunk struct {
	ChunkID    string        `json:"chunk_id"`
	DocumentID string        `json:"document_id"`
	Text       string        `json:"text"`
	Tokens     int           `json:"tokens"`
	ChunkIndex int           `json:"chunk_index"`
	Category   CategoryID    `json:"category"`
	Language   Language      `json:"language"`
	Metadata   ChunkMetadata `json:"metadata"`
}

// EmbeddedChunk is a Chunk plus its L2-normalized dense embedding (§3).
type EmbeddedChunk struct {
	Chunk
	Embedding []float32 `json:"embedding"`
}

// ChunkConfig is the §6 artifact parameter block shared by chunks.json
// and embeddings.json.
type ChunkConfig struct {
	TargetTokens    int `json:"target_tokens"`
	OverlapTokens   int `json:"overlap_tokens"`
	MinChunkTokens  int `json:"min_chunk_tokens"`
}

// ChunksFile is the §6 artifact 2 (chunks.json) wire shape.
type ChunksFile struct {
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generated_at"`
	Config      ChunkConfig `json:"config"`
	TotalChunks int         `json:"total_chunks"`
	Chunks      []Chunk     `json:"chunks"`
}

// EmbeddingsFile is the §6 artifact 3 (embeddings.json / .gz) wire shape.
type EmbeddingsFile struct {
	Version     string          `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	Model       string          `json:"model"`
	EmbeddingDim int            `json:"embedding_dim"`
	TotalChunks int             `json:"total_chunks"`
	Config      ChunkConfig     `json:"config"`
	Chunks      []EmbeddedChunk `json:"chunks"`
}
