package textsplitter

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer estimates how many tokens a string costs a downstream
// model. Encode returns one element per token; callers that only need
// a count should prefer Count.
type Tokenizer interface {
	Encode(text string) []string
	Count(text string) int
}

// SimpleTokenizer counts whitespace-separated fields. Cheap, and wrong
// for unbroken runs of text — a 5000-character string with no spaces
// counts as a single token. Fine for tests and as a last-resort
// fallback; not for anything budget-sensitive.
type SimpleTokenizer struct{}

func NewSimpleTokenizer() *SimpleTokenizer {
	return &SimpleTokenizer{}
}

func (t *SimpleTokenizer) Encode(text string) []string {
	return strings.Fields(text)
}

func (t *SimpleTokenizer) Count(text string) int {
	return len(strings.Fields(text))
}

// TikTokenTokenizer tokenizes text with OpenAI's tiktoken encodings. It
// is the default concrete collab.TokenCounter PromptBuilder's chat mode
// calls into (see prompt/tokencounter).
type TikTokenTokenizer struct {
	encoding *tiktoken.Tiktoken
}

func NewTikTokenTokenizer(model string) (*TikTokenTokenizer, error) {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return &TikTokenTokenizer{encoding: tkm}, nil
}

// Encode returns the stringified token ids. tiktoken-go has no public
// id->token-string decode, so these are not human-readable tokens;
// only len(Encode(text)) is meaningful.
func (t *TikTokenTokenizer) Encode(text string) []string {
	tokenIDs := t.encoding.Encode(text, nil, nil)
	tokens := make([]string, len(tokenIDs))
	for i, id := range tokenIDs {
		tokens[i] = fmt.Sprintf("%d", id)
	}
	return tokens
}

func (t *TikTokenTokenizer) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}
