// Package chunk splits extracted document text into overlapping
// sentence-aligned Chunks (§4.3). Its token accounting is intentionally
// decoupled from collab.TokenCounter and from any real tokenizer: the
// estimator here must stay deterministic and offline, per §9.
package chunk

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aqua777/campus-rag-core/model"
)

// Config holds the Chunker's token budget parameters (§4.3). The zero
// value is invalid; use DefaultConfig.
type Config struct {
	TargetTokens   int
	OverlapTokens  int
	MinChunkTokens int
}

// DefaultConfig returns the spec-mandated parameters.
func DefaultConfig() Config {
	return Config{TargetTokens: 250, OverlapTokens: 50, MinChunkTokens: 100}
}

func (c Config) toModel() model.ChunkConfig {
	return model.ChunkConfig{
		TargetTokens:   c.TargetTokens,
		OverlapTokens:  c.OverlapTokens,
		MinChunkTokens: c.MinChunkTokens,
	}
}

// Chunker converts normalized document text into model.Chunk values.
type Chunker struct {
	cfg    Config
	logger *slog.Logger
}

// New builds a Chunker. logger may be nil, in which case slog.Default
// is used.
func New(cfg Config, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chunker{cfg: cfg, logger: logger}
}

// Config returns the chunker's parameter block, for embedding into the
// chunks.json / embeddings.json artifact (§6).
func (c *Chunker) Config() model.ChunkConfig {
	return c.cfg.toModel()
}

// estimateTokens is the chunker's sole token-accounting authority
// (§4.3): ceil(len(chars) / 3.5). It must never be replaced by, or
// reconciled with, a collab.TokenCounter.
func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return int(math.Ceil(float64(n) / 3.5))
}

// splitSentences splits on '.', '!', '?' followed by whitespace. No
// language-specific logic, per §4.3.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			if j >= len(runes) || isSpace(runes[j]) {
				sentences = append(sentences, string(runes[start:j]))
				start = j
			}
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}

	out := sentences[:0]
	for _, s := range sentences {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// overlapTail returns the last n space-separated tokens of text, joined
// by single spaces. Not based on estimateTokens (§4.3).
func overlapTail(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[len(fields)-n:], " ")
}

// Chunk splits doc's extracted text into model.Chunk values following
// the §4.3 assembly rule. It never returns an error: pathological input
// (empty text, all-tiny sentences) yields zero chunks and is logged,
// not fatal.
func (c *Chunker) Chunk(doc model.Document, text string) []model.Chunk {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	meta := model.ChunkMetadata{
		DocumentTitle:    doc.Title,
		DocumentFilename: doc.Filename,
		SourceURL:        doc.SourceURL,
	}

	var chunks []model.Chunk
	emit := func(segment string) {
		tokens := estimateTokens(segment)
		chunks = append(chunks, model.Chunk{
			ChunkID:    fmt.Sprintf("%s_chunk_%d", doc.ID, len(chunks)),
			DocumentID: doc.ID,
			Text:       segment,
			Tokens:     tokens,
			ChunkIndex: len(chunks),
			Category:   doc.Category,
			Language:   doc.Language,
			Metadata:   meta,
		})
	}

	var current strings.Builder
	currentTokens := 0

	for _, sentence := range sentences {
		if current.Len() == 0 {
			current.WriteString(sentence)
			currentTokens = estimateTokens(sentence)
			continue
		}

		if currentTokens+estimateTokens(sentence) > c.cfg.TargetTokens {
			finished := current.String()
			emit(finished)

			seed := overlapTail(finished, c.cfg.OverlapTokens)
			current.Reset()
			if seed != "" {
				current.WriteString(seed)
				current.WriteString(" ")
			}
			current.WriteString(sentence)
			currentTokens = estimateTokens(current.String())
			continue
		}

		current.WriteString(" ")
		current.WriteString(sentence)
		currentTokens += estimateTokens(sentence)
	}

	if current.Len() > 0 {
		tail := current.String()
		if estimateTokens(tail) >= c.cfg.MinChunkTokens {
			emit(tail)
		} else {
			c.logger.Debug("chunker: dropping undersized trailing segment",
				"document_id", doc.ID, "tokens", estimateTokens(tail))
		}
	}

	if len(chunks) == 0 {
		c.logger.Info("chunker: produced zero chunks", "document_id", doc.ID)
	}
	return chunks
}
