package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/campus-rag-core/collab/collabtest"
	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/prompt"
)

type PromptTestSuite struct {
	suite.Suite
	builder *prompt.Builder
}

func (s *PromptTestSuite) SetupTest() {
	s.builder = prompt.New(collabtest.TokenCounter{})
}

func (s *PromptTestSuite) TestValidateMessageRejectsEmpty() {
	_, err := prompt.ValidateMessage("   ")
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrInvalidMessage)
}

func (s *PromptTestSuite) TestValidateMessageRejectsTooLong() {
	_, err := prompt.ValidateMessage(strings.Repeat("a", 2001))
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrInvalidMessage)
}

func (s *PromptTestSuite) TestValidateMessageTrims() {
	clean, err := prompt.ValidateMessage("  hello  ")
	s.Require().NoError(err)
	s.Equal("hello", clean)
}

func (s *PromptTestSuite) TestBuildChatPromptKeepsAtLeastOneMessage() {
	history := []prompt.Message{
		{Role: prompt.RoleUser, Content: strings.Repeat("x ", 2000)},
	}
	out := s.builder.BuildChatPrompt(history, "hi")
	s.True(strings.HasPrefix(out, "User: x x "))
	s.Contains(out, "User: hi\nAssistant:")
}

func (s *PromptTestSuite) TestBuildChatPromptDropsOldestFirst() {
	// 501 + 3 whitespace tokens exceed the 412-token budget; dropping the
	// first message leaves 3.
	history := []prompt.Message{
		{Role: prompt.RoleUser, Content: strings.Repeat("first ", 500)},
		{Role: prompt.RoleAssistant, Content: "second message"},
	}
	out := s.builder.BuildChatPrompt(history, "third")
	s.NotContains(out, "first")
	s.Contains(out, "Assistant: second message\n")
	s.Contains(out, "third")
}

func (s *PromptTestSuite) TestBuildGroundedPromptNumbersSourcesInOrder() {
	chunks := []model.Chunk{
		{Text: "alpha"},
		{Text: "beta"},
	}
	out := prompt.BuildGroundedPrompt(chunks, "what is alpha?")
	alphaIdx := strings.Index(out, "[Source 1]:\nalpha")
	betaIdx := strings.Index(out, "[Source 2]:\nbeta")
	s.GreaterOrEqual(alphaIdx, 0)
	s.GreaterOrEqual(betaIdx, 0)
	s.Less(alphaIdx, betaIdx)
	s.Contains(out, "what is alpha?")
}

func (s *PromptTestSuite) TestExtractResponseTruncatesAtNextTurn() {
	raw := "Assistant: the answer is 42.\nUser: and then?"
	got := prompt.ExtractResponse(raw)
	s.Equal("the answer is 42.", got)
}

func (s *PromptTestSuite) TestExtractResponseStripsRolePrefix() {
	for _, prefix := range []string{"Assistant:", "Bot:", "AI:", "GPT:"} {
		got := prompt.ExtractResponse(prefix + " hello there")
		s.Equal("hello there", got)
	}
}

func (s *PromptTestSuite) TestExtractResponseTrimsWhitespace() {
	got := prompt.ExtractResponse("   padded answer   ")
	s.Equal("padded answer", got)
}

func TestPromptTestSuite(t *testing.T) {
	suite.Run(t, new(PromptTestSuite))
}
