package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"docuchat/internal/ai"
	"docuchat/internal/model"
)

// RefusalSentence is the exact reply the engine is instructed to return, with
// nothing else, whenever answering would require locked content. The
// orchestrator compares answers against it verbatim to re-open the credential
// prompt; treat it as a compatibility surface, not prose.
const RefusalSentence = "This information is in a confidential document and requires administrator verification."

var ErrEngineUnavailable = errors.New("answer engine unavailable")

const systemInstructionTemplate = `You are a document-grounded assistant. Answer the user's questions based ONLY on the documents provided below.

GUIDELINES:
- If the answer is not in the documents, say "I couldn't find information about that in your documents."
- Cite documents using [Document Name] when you reference specific parts.
- If the user asks in another language, answer in that language.
- Be concise but thorough, and synthesize across documents when needed.

SECURITY PROTOCOL:
Some documents below are marked [LOCKED] and their content is withheld. If answering would require a locked document, reply with exactly this sentence and nothing else:
%s

CONTEXT DOCUMENTS:
%s`

// AnswerEngine adapts the generation engine to the orchestrator: it embeds
// the assembled context in a system instruction, replays a bounded window of
// prior turns, and bounds the call with a timeout so a hung engine surfaces
// as a transport failure instead of blocking the session.
type AnswerEngine struct {
	client        ai.ChatCompleter
	cfg           ai.ChatConfig
	historyWindow int
	timeout       time.Duration
}

func NewAnswerEngine(client ai.ChatCompleter, cfg ai.ChatConfig, historyWindow int, timeout time.Duration) *AnswerEngine {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnswerEngine{
		client:        client,
		cfg:           cfg,
		historyWindow: historyWindow,
		timeout:       timeout,
	}
}

// Answer sends context + recent history + the new query and returns the raw
// engine text. The caller inspects it for the refusal sentence and derives
// citations.
func (e *AnswerEngine) Answer(ctx context.Context, query, contextBlob string, history []model.Message) (string, error) {
	messages := make([]ai.ChatMessage, 0, e.historyWindow+2)
	messages = append(messages, ai.ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemInstructionTemplate, RefusalSentence, contextBlob),
	})

	recent := history
	if len(recent) > e.historyWindow {
		recent = recent[len(recent)-e.historyWindow:]
	}
	for _, item := range recent {
		role := item.Role
		if role == "" {
			role = model.RoleUser
		}
		messages = append(messages, ai.ChatMessage{Role: role, Content: item.Content})
	}
	messages = append(messages, ai.ChatMessage{Role: model.RoleUser, Content: query})

	return e.complete(ctx, messages)
}

// Summarize asks the engine for a standalone summary of one document. Used
// outside the normal query path, so no history window is attached.
func (e *AnswerEngine) Summarize(ctx context.Context, doc model.Document) (string, error) {
	messages := []ai.ChatMessage{
		{Role: "system", Content: "You are a helpful assistant that summarizes documents clearly. Use bullet points."},
		{Role: model.RoleUser, Content: "Please provide a concise summary of this document:\n\n" + doc.Content},
	}
	return e.complete(ctx, messages)
}

func (e *AnswerEngine) complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	answer, err := e.client.Complete(callCtx, e.cfg, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: empty response", ErrEngineUnavailable)
	}
	return answer, nil
}
