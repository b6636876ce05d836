package model

import (
	"errors"
	"fmt"
)

// Error taxonomy (§7). Components wrap these with context via
// fmt.Errorf("...: %w", err) and callers unwrap with errors.Is.
var (
	// ErrIndexCorrupt is fatal: the embeddings artifact is malformed or
	// its declared dimension doesn't match its vectors. Only IndexLoader
	// may raise it, and only at startup.
	ErrIndexCorrupt = errors.New("vector index is corrupt")

	// ErrDimensionMismatch means a query vector's length does not equal
	// the index's embedding dimension. Programming error, surfaced to
	// the caller.
	ErrDimensionMismatch = errors.New("query vector dimension mismatch")

	// ErrQueryNotNormalized means a query vector failed the same L2-norm
	// check IndexLoader applies to stored vectors. VectorStore asserts
	// normalization at load AND at query time rather than trusting the
	// caller's EmbedderClient to always normalize (§9).
	ErrQueryNotNormalized = errors.New("query vector is not L2-normalized")

	// ErrInvalidArgument covers a non-positive topK, an unusable seed
	// document in FindSimilarDocuments, or a chat message failing
	// validation. A forced routing mode is not validated.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidMessage is a narrower ErrInvalidArgument for PromptBuilder
	// input validation (§4.7): empty or >2000 chars after trimming.
	ErrInvalidMessage = fmt.Errorf("invalid message: %w", ErrInvalidArgument)

	// ErrEmbedderUnavailable / ErrGeneratorUnavailable mark a collaborator
	// that isn't ready. RAGPipeline converts these to an error result;
	// QueryRouter downgrades to general mode.
	ErrEmbedderUnavailable  = errors.New("embedder unavailable")
	ErrGeneratorUnavailable = errors.New("generator unavailable")

	// ErrUnknownShareLink, ErrDownloadFailed, ErrExtractionFailed are
	// offline-only: recorded per document, never abort the batch.
	ErrUnknownShareLink = errors.New("unrecognized share-link format")
	ErrDownloadFailed   = errors.New("download failed")
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrCancelled marks a query aborted via the caller's context.
	ErrCancelled = errors.New("query cancelled")
)
