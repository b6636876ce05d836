// Package prompt assembles the text sent to the Generator — chat
// prompts bounded by a token budget, and grounded RAG prompts built
// from numbered source blocks — and cleans up its raw completions
// (§4.7). Both modes live in one package because they share the
// response-extraction logic (§9).
package prompt

import (
	"fmt"
	"strings"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/model"
)

const (
	contextMax = 512
	reserve    = 100
	budget     = contextMax - reserve

	maxMessageChars = 2000
)

// Role is a chat message's speaker.
type Role string

const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// Message is one turn of chat history.
type Message struct {
	Role    Role
	Content string
}

// Builder assembles and cleans prompts.
type Builder struct {
	counter collab.TokenCounter
}

// New builds a Builder. counter is used only for chat-history
// truncation; the chunker's own estimator never flows through here
// (§9).
func New(counter collab.TokenCounter) *Builder {
	return &Builder{counter: counter}
}

// ValidateMessage implements the §4.7 validation rule: non-empty,
// ≤2000 characters after trimming.
func ValidateMessage(msg string) (string, error) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		return "", fmt.Errorf("message is empty: %w", model.ErrInvalidMessage)
	}
	if len([]rune(trimmed)) > maxMessageChars {
		return "", fmt.Errorf("message exceeds %d characters: %w", maxMessageChars, model.ErrInvalidMessage)
	}
	return trimmed, nil
}

// BuildChatPrompt assembles a free-chat prompt from bounded history plus
// the new message (§4.7). history is truncated from the front until it
// fits within budget tokens, always keeping at least the most recent
// message; the new message's own cost is not itself subject to
// truncation.
func (b *Builder) BuildChatPrompt(history []Message, newMessage string) string {
	kept := b.truncateHistory(history)

	var sb strings.Builder
	for _, m := range kept {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&sb, "User: %s\nAssistant:", newMessage)
	return sb.String()
}

func (b *Builder) truncateHistory(history []Message) []Message {
	if len(history) == 0 {
		return history
	}
	kept := history
	for len(kept) > 1 && b.estimateTokens(kept) > budget {
		kept = kept[1:]
	}
	return kept
}

func (b *Builder) estimateTokens(history []Message) int {
	var sb strings.Builder
	for _, m := range history {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	return b.counter.Count(sb.String())
}

// groundedHeader is language-agnostic wording instructing the model to
// answer using only the supplied sources (§4.7).
const groundedHeader = "Answer the question using only the information in the sources below. / Дай відповідь на питання, використовуючи лише наведені нижче джерела."

// BuildGroundedPrompt assembles the RAG prompt: header, numbered source
// blocks in retrieval order, the question, then the generation cue
// (§4.7).
func BuildGroundedPrompt(chunks []model.Chunk, question string) string {
	var sb strings.Builder
	sb.WriteString(groundedHeader)
	sb.WriteString("\n\n")
	for i, c := range chunks {
		fmt.Fprintf(&sb, "[Source %d]:\n%s\n\n", i+1, c.Text)
	}
	fmt.Fprintf(&sb, "User: %s\nAssistant:", question)
	return sb.String()
}

var rolePrefixes = []string{"Assistant:", "Bot:", "AI:", "GPT:"}

// ExtractResponse cleans a raw generator continuation (§4.7): truncate
// at the first "\nUser:" or "\nAssistant:", strip a leading role
// prefix, trim whitespace.
func ExtractResponse(raw string) string {
	text := raw
	if i := indexOfFirst(text, "\nUser:", "\nAssistant:"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	for _, prefix := range rolePrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			break
		}
	}
	return text
}

func indexOfFirst(s string, substrs ...string) int {
	best := -1
	for _, sub := range substrs {
		if i := strings.Index(s, sub); i >= 0 && (best == -1 || i < best) {
			best = i
		}
	}
	return best
}
