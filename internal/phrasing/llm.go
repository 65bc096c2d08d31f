package phrasing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/langid"
	"github.com/talentscout/screener/internal/llm"
	"github.com/talentscout/screener/internal/logger"
)

const phrasingSystemPrompt = `You are TalentScout's hiring assistant running an initial screening interview.

Rewrite the draft reply so it reads naturally and warmly, in the requested language.

Rules:
- Keep every fact, request and question of the draft. Do not add new questions.
- Technical questions must keep their exact technical meaning.
- Never invent information about the candidate or the company.
- Reply with the message text only, no preamble.`

// LLM rephrases template output with a language model, in the session
// language. Any provider failure falls back to the template text.
type LLM struct {
	provider llm.Provider
	base     Phraser
	catalog  *langid.Catalog
	log      *zap.Logger
}

// NewLLM wraps base. catalog may be nil; language codes are then passed
// to the model as is.
func NewLLM(provider llm.Provider, base Phraser, catalog *langid.Catalog, log *zap.Logger) *LLM {
	return &LLM{provider: provider, base: base, catalog: catalog, log: logger.OrNop(log)}
}

// Phrase renders ri through the base phraser and asks the model to polish
// the result.
func (p *LLM) Phrase(ctx context.Context, s *interview.Session, ri interview.ResponseIntent) (string, error) {
	draft, err := p.base.Phrase(ctx, s, ri)
	if err != nil {
		return "", err
	}

	ctx = llm.WithSession(llm.WithPurpose(ctx, "phrasing"), s.ID)
	resp, err := p.provider.Generate(ctx, llm.Request{
		System: phrasingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: p.buildUserMessage(s, draft)},
		},
		MaxTokens:   400,
		Temperature: 0.4,
	})
	if err != nil {
		logger.WithSession(p.log, s.ID).Warn("LLM phrasing failed, using template text", zap.Error(err))
		return draft, nil
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return draft, nil
	}
	return out, nil
}

func (p *LLM) buildUserMessage(s *interview.Session, draft string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", p.languageName(s.Language))
	if n := len(s.Turns); n > 0 {
		fmt.Fprintf(&b, "Candidate's last message: %s\n", logger.Truncate(s.Turns[n-1].Utterance, 500))
	}
	fmt.Fprintf(&b, "Draft reply: %s", draft)
	return b.String()
}

func (p *LLM) languageName(code string) string {
	if p.catalog != nil {
		if lang, ok := p.catalog.Lookup(code); ok {
			return lang.Name
		}
	}
	return code
}
