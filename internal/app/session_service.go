package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docuchat/internal/model"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMessageEmpty     = errors.New("message content is empty")
	ErrSessionBusy      = errors.New("another turn is already in flight")
	ErrNoPromptOpen     = errors.New("no credential prompt is open")
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentLocked   = errors.New("document requires administrator verification")
)

const (
	noticeLoginPrompt       = "Administrator verification required. Please enter your credentials to continue."
	noticeAlreadyAuthorized = "You are already verified as an administrator."
	noticeLoginWelcome      = "Welcome, administrator. Confidential documents are now available."
	noticeEngineFailure     = "I'm having trouble reaching the answer engine right now. Please try again in a moment."
	welcomeMessage          = "Welcome to your notebook! Upload documents and ask me anything about them."
)

// Turn is what one user submission produced.
type Turn struct {
	AssistantText        string   `json:"assistant_text"`
	Sources              []string `json:"sources,omitempty"`
	TriggeredLoginPrompt bool     `json:"triggered_login_prompt"`
	AlreadyAuthenticated bool     `json:"already_authenticated"`
}

// LoginResult reports a credential attempt; Turn carries the replayed pending
// query's answer (or the welcome notice) on success.
type LoginResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Turn  *Turn  `json:"turn,omitempty"`
}

// AuthStatus is the read-only authorization view exposed to the UI.
type AuthStatus struct {
	Authorized bool `json:"authorized"`
	PromptOpen bool `json:"prompt_open"`
}

type DocumentRegistry interface {
	List() ([]model.Document, error)
	Get(id string) (*model.Document, error)
}

type MessageStore interface {
	ListBySessionID(sessionID string, limit int) ([]model.Message, error)
	ListRecentBySessionID(sessionID string, limit int) ([]model.Message, error)
}

type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

// SessionService orchestrates one user turn end to end: route the utterance,
// assemble the gated context, call the engine, derive citations, and drive
// the authorization state machine.
type SessionService struct {
	docs          DocumentRegistry
	messages      MessageStore
	publisher     AsyncMessagePublisher
	historyCache  HistoryCache
	engine        *AnswerEngine
	verifier      CredentialVerifier
	historyWindow int
}

func NewSessionService(
	docs DocumentRegistry,
	messages MessageStore,
	publisher AsyncMessagePublisher,
	historyCache HistoryCache,
	engine *AnswerEngine,
	verifier CredentialVerifier,
	historyWindow int,
) *SessionService {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &SessionService{
		docs:          docs,
		messages:      messages,
		publisher:     publisher,
		historyCache:  historyCache,
		engine:        engine,
		verifier:      verifier,
		historyWindow: historyWindow,
	}
}

// SubmitQuery handles one user utterance. Trigger phrases are intercepted
// before any engine call so control utterances never enter the assembled
// context or the prompt history; they still land in the visible transcript.
func (s *SessionService) SubmitQuery(ctx context.Context, sess *Session, text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrMessageEmpty
	}
	if !sess.TryAcquire() {
		return nil, ErrSessionBusy
	}
	defer sess.Release()

	switch Route(text, sess.Auth.Authorized()) {
	case RouteLoginTrigger:
		sess.Auth.OpenPrompt("")
		s.record(ctx, sess.ID, model.RoleUser, text, nil, true)
		s.record(ctx, sess.ID, model.RoleAssistant, noticeLoginPrompt, nil, true)
		return &Turn{AssistantText: noticeLoginPrompt, TriggeredLoginPrompt: true}, nil
	case RouteAlreadyAuthorized:
		s.record(ctx, sess.ID, model.RoleUser, text, nil, true)
		s.record(ctx, sess.ID, model.RoleAssistant, noticeAlreadyAuthorized, nil, true)
		return &Turn{AssistantText: noticeAlreadyAuthorized, AlreadyAuthenticated: true}, nil
	}

	return s.answer(ctx, sess, text, true)
}

// answer runs the engine path for a normal query. Caller holds the turn lock.
// recordQuery is false on a post-login replay, where the query already sits in
// the transcript from the turn that was refused.
func (s *SessionService) answer(ctx context.Context, sess *Session, query string, recordQuery bool) (*Turn, error) {
	docs, err := s.docs.List()
	if err != nil {
		return nil, err
	}

	// Prompt history is read before recording the query so the engine sees
	// the query exactly once.
	history, err := s.messages.ListRecentBySessionID(sess.ID, s.historyWindow)
	if err != nil {
		logrus.WithError(err).Warn("load prompt history failed, answering without history")
		history = nil
	}

	authorized := sess.Auth.Authorized()
	contextBlob := BuildContext(docs, authorized)
	if recordQuery {
		s.record(ctx, sess.ID, model.RoleUser, query, nil, false)
	}

	answer, err := s.engine.Answer(ctx, query, contextBlob, history)
	if err != nil {
		logrus.WithError(err).Error("answer engine call failed")
		s.record(ctx, sess.ID, model.RoleAssistant, noticeEngineFailure, nil, true)
		return &Turn{AssistantText: noticeEngineFailure}, nil
	}

	// The engine signals locked-content refusal by returning the refusal
	// sentence verbatim; that is the second entry path into Prompting and
	// preserves the query for replay after login.
	if answer == RefusalSentence && !authorized {
		sess.Auth.OpenPrompt(query)
		s.record(ctx, sess.ID, model.RoleAssistant, answer, nil, false)
		return &Turn{AssistantText: answer, TriggeredLoginPrompt: true}, nil
	}

	sources := ExtractSources(answer, docs)
	s.record(ctx, sess.ID, model.RoleAssistant, answer, sources, false)
	return &Turn{AssistantText: answer, Sources: sources}, nil
}

// SubmitCredentials resolves an open credential prompt. On success the
// deferred query, if any and unless it is itself a trigger phrase, is
// replayed exactly once.
func (s *SessionService) SubmitCredentials(ctx context.Context, sess *Session, username, password string) (*LoginResult, error) {
	if !sess.TryAcquire() {
		return nil, ErrSessionBusy
	}
	defer sess.Release()

	if !sess.Auth.PromptOpen() {
		return nil, ErrNoPromptOpen
	}

	if !s.verifier.Verify(username, password) {
		sess.Auth.Reject()
		return &LoginResult{OK: false, Error: "invalid username or password"}, nil
	}

	pending := sess.Auth.Grant()
	if pending != "" && Route(pending, true) == RouteNormal {
		turn, err := s.answer(ctx, sess, pending, false)
		if err != nil {
			return nil, err
		}
		return &LoginResult{OK: true, Turn: turn}, nil
	}

	s.record(ctx, sess.ID, model.RoleAssistant, noticeLoginWelcome, nil, true)
	return &LoginResult{OK: true, Turn: &Turn{AssistantText: noticeLoginWelcome}}, nil
}

// CancelLogin closes the credential prompt; the deferred query is dropped.
func (s *SessionService) CancelLogin(sess *Session) error {
	if !sess.TryAcquire() {
		return ErrSessionBusy
	}
	defer sess.Release()
	sess.Auth.Cancel()
	return nil
}

// Logout revokes administrator access and drops the cached transcript, which
// may embed answers derived from confidential content.
func (s *SessionService) Logout(ctx context.Context, sess *Session) error {
	if !sess.TryAcquire() {
		return ErrSessionBusy
	}
	defer sess.Release()
	sess.Auth.Logout()
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(ctx, sess.ID)
	}
	return nil
}

func (s *SessionService) AuthStatus(sess *Session) AuthStatus {
	return AuthStatus{
		Authorized: sess.Auth.Authorized(),
		PromptOpen: sess.Auth.PromptOpen(),
	}
}

// Summarize produces a standalone summary turn for one document. Locked
// documents cannot be summarized while unverified.
func (s *SessionService) Summarize(ctx context.Context, sess *Session, documentID string) (*Turn, error) {
	if documentID == "" {
		return nil, ErrInvalidInput
	}
	if !sess.TryAcquire() {
		return nil, ErrSessionBusy
	}
	defer sess.Release()

	doc, err := s.docs.Get(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if Classify(*doc, sess.Auth.Authorized()) == Locked {
		return nil, ErrDocumentLocked
	}

	summary, err := s.engine.Summarize(ctx, *doc)
	if err != nil {
		logrus.WithError(err).Error("summarize engine call failed")
		s.record(ctx, sess.ID, model.RoleAssistant, noticeEngineFailure, nil, true)
		return &Turn{AssistantText: noticeEngineFailure}, nil
	}

	text := fmt.Sprintf("### Summary: %s\n\n%s", doc.Name, summary)
	sources := []string{doc.Name}
	s.record(ctx, sess.ID, model.RoleAssistant, text, sources, false)
	return &Turn{AssistantText: text, Sources: sources}, nil
}

// GetHistory returns the visible transcript, preferring the cache. An empty
// transcript yields the default welcome message, never an error.
func (s *SessionService) GetHistory(ctx context.Context, sess *Session, limit int) ([]model.Message, error) {
	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, sess.ID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, sess.ID); cacheErr == nil && hit {
				return trimMessages(cached, limit), nil
			}
		}
	}

	messages, err := s.messages.ListBySessionID(sess.ID, limit)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return []model.Message{s.welcomeFor(sess)}, nil
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, sess.ID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, sess.ID, messages)
		}
	}
	return messages, nil
}

// ExportTranscript renders the transcript as plain text for download.
func (s *SessionService) ExportTranscript(ctx context.Context, sess *Session) (string, error) {
	messages, err := s.GetHistory(ctx, sess, 0)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, m := range messages {
		b.WriteString(strings.ToUpper(m.Role))
		b.WriteString(" (")
		b.WriteString(m.CreatedAt.Format(time.RFC3339))
		b.WriteString("):\n")
		b.WriteString(m.Content)
		b.WriteByte('\n')
		if sources := m.SourceNames(); len(sources) > 0 {
			b.WriteString("Sources: ")
			b.WriteString(strings.Join(sources, ", "))
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("-", 20))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func (s *SessionService) welcomeFor(sess *Session) model.Message {
	return model.Message{
		ID:        "welcome",
		SessionID: sess.ID,
		Role:      model.RoleAssistant,
		Content:   welcomeMessage,
		Notice:    true,
		CreatedAt: sess.CreatedAt,
	}
}

// record appends a message to the transcript through the persistence queue.
// Durability is best effort: a broker outage must not fail the turn.
func (s *SessionService) record(ctx context.Context, sessionID, role, content string, sources []string, notice bool) {
	msg := model.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Notice:    notice,
		CreatedAt: time.Now(),
	}
	msg.SetSourceNames(sources)

	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, sessionID)
		_ = s.historyCache.DeleteHistory(ctx, sessionID)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		logrus.WithError(err).Warn("publish transcript message failed")
	}
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
