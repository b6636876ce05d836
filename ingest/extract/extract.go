// Package extract converts a downloaded Document's binary payload into
// normalized plain text (§4.2). PDF is handled page-by-page with
// ledongthuc/pdf; DOCX via nguyenthenguyen/docx's raw text stream.
// Legacy .doc has no supported native parser and always fails with
// model.ErrExtractionFailed.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"github.com/nguyenthenguyen/docx"

	"github.com/aqua777/campus-rag-core/model"
)

// sentenceTokenizer backs the post-extraction garbage-text check below.
// Built once since english.NewSentenceTokenizer loads a training model.
var sentenceTokenizer *sentences.DefaultSentenceTokenizer

func init() {
	t, err := english.NewSentenceTokenizer(nil)
	if err == nil {
		sentenceTokenizer = t
	}
}

// averageWordsPerSentence above this suggests the extracted text is
// missing sentence punctuation entirely — a symptom of a scanned PDF
// or a parser that dropped structure rather than real prose.
const garbledSentenceThreshold = 80

// Result is the extracted, normalized text plus basic counts recorded
// alongside the Document for diagnostics.
type Result struct {
	Text       string
	WordCount  int
	CharCount  int
}

// Extractor converts a Document's on-disk payload to normalized text.
type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract reads doc.Filepath and returns normalized text. It never
// panics; any failure is wrapped in model.ErrExtractionFailed.
func (e *Extractor) Extract(doc model.Document) (Result, error) {
	switch doc.Type {
	case model.DocumentTypePDF:
		return e.extractPDF(doc)
	case model.DocumentTypeDOCX:
		return e.extractDOCX(doc)
	default:
		return Result{}, fmt.Errorf("extract %s: document type %q has no native parser: %w",
			doc.Filepath, doc.Type, model.ErrExtractionFailed)
	}
}

func (e *Extractor) extractPDF(doc model.Document) (Result, error) {
	f, err := os.Open(doc.Filepath)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: open: %w: %v", doc.Filepath, model.ErrExtractionFailed, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: stat: %w: %v", doc.Filepath, model.ErrExtractionFailed, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: parse pdf: %w: %v", doc.Filepath, model.ErrExtractionFailed, err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("extract: page failed", "document_id", doc.ID, "page", pageNum, "error", err)
			continue
		}
		pages = append(pages, text+"\n")
	}

	raw := strings.Join(pages, "\n")
	result := normalizeResult(raw)
	e.checkGarbled(doc, result)
	return result, nil
}

func (e *Extractor) extractDOCX(doc model.Document) (Result, error) {
	d, err := docx.ReadDocxFile(doc.Filepath)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: open docx: %w: %v", doc.Filepath, model.ErrExtractionFailed, err)
	}
	defer d.Close()

	raw := d.Editable().GetContent()
	result := normalizeResult(raw)
	e.checkGarbled(doc, result)
	return result, nil
}

// checkGarbled flags text whose sentence density is implausibly low,
// which usually means the source was a scanned image or the parser
// lost sentence punctuation rather than that the document is terse.
func (e *Extractor) checkGarbled(doc model.Document, result Result) {
	if sentenceTokenizer == nil || result.WordCount == 0 {
		return
	}
	count := len(sentenceTokenizer.Tokenize(result.Text))
	if count == 0 {
		e.logger.Warn("extract: no sentence boundaries detected", "document_id", doc.ID, "words", result.WordCount)
		return
	}
	if avg := float64(result.WordCount) / float64(count); avg > garbledSentenceThreshold {
		e.logger.Warn("extract: suspiciously low sentence density, possible extraction garbage",
			"document_id", doc.ID, "words_per_sentence", avg)
	}
}

func normalizeResult(raw string) Result {
	text := Normalize(raw)
	if text == "" {
		return Result{Text: ""}
	}
	return Result{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		CharCount: len([]rune(text)),
	}
}

// Normalize applies the §4.2 whitespace rule: every maximal run of
// whitespace collapses to a single space, unless it contains 3 or more
// newlines, in which case it is a paragraph break and collapses to
// exactly two newlines. Then trim. E.g. "A  \n\n\n\nB" -> "A\n\nB".
func Normalize(raw string) string {
	var out strings.Builder
	var run strings.Builder
	newlines := 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if newlines >= 3 {
			out.WriteString("\n\n")
		} else {
			out.WriteByte(' ')
		}
		run.Reset()
		newlines = 0
	}

	for _, r := range raw {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			run.WriteRune(r)
			if r == '\n' {
				newlines++
			}
			continue
		}
		flush()
		out.WriteRune(r)
	}
	flush()

	return strings.TrimSpace(out.String())
}
