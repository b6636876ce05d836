// Package fetch discovers document links from a university regulations
// index page, resolves share-host redirects, and downloads the binary
// payloads to disk with a polite rate limit, producing a documents
// manifest (§4.1). It is the only ingestion component that talks to
// the network.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	httpclient "github.com/aqua777/campus-rag-core/http"
	"github.com/aqua777/campus-rag-core/model"
)

// Config configures a Fetcher run.
type Config struct {
	IndexURL   string
	OutputRoot string
	// RequestInterval is the fixed inter-download delay (§4.1 default 1s).
	RequestInterval time.Duration
}

func DefaultConfig(indexURL, outputRoot string) Config {
	return Config{IndexURL: indexURL, OutputRoot: outputRoot, RequestInterval: time.Second}
}

// Fetcher produces the Document set and downloads their payloads.
type Fetcher struct {
	cfg     Config
	client  *httpclient.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Fetcher, error) {
	client, err := httpclient.NewClient()
	if err != nil {
		return nil, fmt.Errorf("fetch.New: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = time.Second
	}
	return &Fetcher{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		logger:  logger.With("run_id", uuid.NewString()),
	}, nil
}

// Run discovers, downloads, and returns the assembled manifest. Per-
// document failures are recorded on the Document and never abort the
// run; only discovery-stage failures (can't fetch or parse the index
// itself) return an error.
func (f *Fetcher) Run(ctx context.Context) (model.DocumentsManifest, error) {
	body, status, err := f.client.Do(ctx, httpclient.MethodGet, f.cfg.IndexURL, nil, nil)
	if err != nil {
		return model.DocumentsManifest{}, fmt.Errorf("fetch index %s: %w", f.cfg.IndexURL, err)
	}
	if status != httpclient.StatusOK {
		return model.DocumentsManifest{}, fmt.Errorf("fetch index %s: status %d", f.cfg.IndexURL, status)
	}

	links, headingCount, err := discover(string(body), f.cfg.IndexURL)
	if err != nil {
		return model.DocumentsManifest{}, fmt.Errorf("discover links in %s: %w", f.cfg.IndexURL, err)
	}
	if headingCount != len(model.CategoryOrder) {
		f.logger.Warn("fetch: heading count does not match category taxonomy",
			"headings_found", headingCount, "categories_expected", len(model.CategoryOrder))
	}

	docCounts := map[model.CategoryID]int{}
	var documents []model.Document

	for _, l := range links {
		doc := f.buildDocument(ctx, l)
		documents = append(documents, doc)
		if doc.Downloaded {
			docCounts[doc.Category]++
		}
	}

	categories := make([]model.Category, 0, len(model.CategoryOrder)+1)
	for _, id := range model.CategoryOrder {
		def := model.CategoryDefinition(id)
		def.DocumentCount = docCounts[id]
		categories = append(categories, def)
	}
	if docCounts[model.CategoryUncategorized] > 0 {
		def := model.CategoryDefinition(model.CategoryUncategorized)
		def.DocumentCount = docCounts[model.CategoryUncategorized]
		categories = append(categories, def)
	}

	return model.DocumentsManifest{
		Version:     "1.0",
		GeneratedAt: time.Now().UTC(),
		SourceURL:   f.cfg.IndexURL,
		TotalCount:  len(documents),
		Categories:  categories,
		Documents:   documents,
	}, nil
}

// buildDocument resolves, downloads, and records a single discovered
// link. It never returns an error: failures are recorded on the
// Document itself (§4.1).
func (f *Fetcher) buildDocument(ctx context.Context, l link) model.Document {
	title := l.Title
	if title == "" {
		title = filepath.Base(l.URL)
	}

	doc := model.Document{
		ID:        documentID(l.Category, title),
		Title:     title,
		SourceURL: l.URL,
		Category:  l.Category,
		Language:  model.DetectLanguage(title),
		Type:      model.DocumentTypeUnknown,
	}

	downloadURL := l.URL
	docType := extensionType(l.URL)
	if isShareLink(l.URL) {
		resolved, err := resolveShareLink(l.URL)
		if err != nil {
			doc.DownloadError = err.Error()
			return doc
		}
		downloadURL = resolved
		docType = model.DocumentTypeUnknown // resolved after content sniff
	}

	if docType != model.DocumentTypeUnknown {
		filename := sanitizeFilename(title) + extensionFor(docType)
		dest := filepath.Join(f.cfg.OutputRoot, string(doc.Category), filename)
		if _, statErr := os.Stat(dest); statErr == nil {
			// §4.1 idempotence: destination exists, skip download, still
			// emit a manifest entry.
			doc.Type, doc.Filename, doc.Filepath = docType, filename, dest
			doc.Downloaded = true
			doc.DownloadDate = time.Now().UTC()
			return doc
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		doc.DownloadError = fmt.Errorf("%w: %v", model.ErrDownloadFailed, err).Error()
		return doc
	}

	body, status, err := f.client.Do(ctx, httpclient.MethodGet, downloadURL, nil, nil)
	if err != nil {
		doc.DownloadError = fmt.Errorf("%w: %v", model.ErrDownloadFailed, err).Error()
		return doc
	}
	if status != httpclient.StatusOK {
		doc.DownloadError = fmt.Errorf("%w: status %d", model.ErrDownloadFailed, status).Error()
		return doc
	}

	if docType == model.DocumentTypeUnknown {
		docType = sniffType(body)
	}
	doc.Type = docType

	ext := extensionFor(docType)
	filename := sanitizeFilename(title) + ext
	destDir := filepath.Join(f.cfg.OutputRoot, string(doc.Category))
	dest := filepath.Join(destDir, filename)

	doc.Filename = filename
	doc.Filepath = dest

	if _, statErr := os.Stat(dest); statErr == nil {
		// Share links: the type, and so the destination name, is only
		// known after download. An existing file is not rewritten; the
		// manifest entry is still emitted.
		doc.Downloaded = true
		doc.DownloadDate = time.Now().UTC()
		return doc
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		doc.DownloadError = fmt.Errorf("%w: mkdir %s: %v", model.ErrDownloadFailed, destDir, err).Error()
		return doc
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		doc.DownloadError = fmt.Errorf("%w: write %s: %v", model.ErrDownloadFailed, dest, err).Error()
		return doc
	}

	doc.Downloaded = true
	doc.DownloadDate = time.Now().UTC()
	return doc
}

func documentID(category model.CategoryID, title string) string {
	slug := sanitizeFilename(strings.ToLower(title))
	slug = strings.ReplaceAll(slug, " ", "_")
	return fmt.Sprintf("%s_%s", category, slug)
}

func extensionType(rawURL string) model.DocumentType {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, ".pdf"):
		return model.DocumentTypePDF
	case strings.Contains(lower, ".docx"):
		return model.DocumentTypeDOCX
	case strings.Contains(lower, ".doc"):
		return model.DocumentTypeDOC
	default:
		return model.DocumentTypeUnknown
	}
}

func extensionFor(t model.DocumentType) string {
	switch t {
	case model.DocumentTypePDF:
		return ".pdf"
	case model.DocumentTypeDOCX:
		return ".docx"
	case model.DocumentTypeDOC:
		return ".doc"
	default:
		return ""
	}
}

// sniffType resolves the §9 open question: share-link payloads carry no
// extension in their URL, so their real type is determined by content-
// sniffing the downloaded bytes rather than hardcoding "pdf".
func sniffType(body []byte) model.DocumentType {
	mime := http.DetectContentType(body)
	switch {
	case strings.Contains(mime, "pdf"):
		return model.DocumentTypePDF
	case strings.Contains(mime, "officedocument.wordprocessingml"), strings.Contains(mime, "msword"):
		return model.DocumentTypeDOCX
	case strings.HasPrefix(mime, "application/zip"):
		// DOCX is a zip container; net/http's sniffer has no dedicated
		// OOXML signature and reports it as zip.
		return model.DocumentTypeDOCX
	default:
		return model.DocumentTypeUnknown
	}
}
