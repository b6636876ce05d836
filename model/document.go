package model

import "time"

// Document is an immutable record produced by the Fetcher (§3). It is
// never mutated after ingestion; the Extractor and Chunker only ever
// read it.
type Document struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Filename       string       `json:"filename"`
	Filepath       string       `json:"filepath"`
	SourceURL      string       `json:"source_url"`
	Category       CategoryID   `json:"category"`
	Language       Language     `json:"language"`
	Type           DocumentType `json:"type"`
	Downloaded     bool         `json:"downloaded"`
	DownloadError  string       `json:"download_error,omitempty"`
	DownloadDate   time.Time    `json:"download_date"`
}

// DetectLanguage implements the §4.1 rule: Cyrillic codepoints in the
// title mean Ukrainian, anything else is treated as English.
func DetectLanguage(title string) Language {
	for _, r := range title {
		if (r >= 0x0400 && r <= 0x04FF) || (r >= 0x0500 && r <= 0x052F) {
			return LanguageUK
		}
	}
	return LanguageEN
}

// DocumentsManifest is the §6 artifact 1 (documents.json) wire shape.
type DocumentsManifest struct {
	Version      string     `json:"version"`
	GeneratedAt  time.Time  `json:"generated_at"`
	SourceURL    string     `json:"source_url"`
	TotalCount   int        `json:"total_count"`
	Categories   []Category `json:"categories"`
	Documents    []Document `json:"documents"`
}
