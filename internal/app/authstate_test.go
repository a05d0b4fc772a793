package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthStateInitial(t *testing.T) {
	s := NewAuthState()

	assert.Equal(t, Unauthenticated, s.Phase())
	assert.False(t, s.Authorized())
	assert.False(t, s.PromptOpen())
	assert.Empty(t, s.PendingQuery())
}

func TestAuthStateOpenPromptAndGrant(t *testing.T) {
	s := NewAuthState()

	s.OpenPrompt("what is the CEO salary?")
	assert.Equal(t, Prompting, s.Phase())
	assert.Equal(t, "what is the CEO salary?", s.PendingQuery())

	pending := s.Grant()
	assert.Equal(t, "what is the CEO salary?", pending)
	assert.Equal(t, Authenticated, s.Phase())
	assert.Empty(t, s.PendingQuery(), "pending query must be cleared so replay happens once")
}

func TestAuthStateReopenPromptKeepsPending(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("what is the CEO salary?")

	s.OpenPrompt("")
	assert.Equal(t, Prompting, s.Phase())
	assert.Equal(t, "what is the CEO salary?", s.PendingQuery())

	s.OpenPrompt("newer deferred question")
	assert.Equal(t, "newer deferred question", s.PendingQuery())
}

func TestAuthStateRejectKeepsPromptOpen(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("deferred question")

	s.Reject()

	assert.Equal(t, Prompting, s.Phase())
	assert.Equal(t, "deferred question", s.PendingQuery())
}

func TestAuthStateCancelDropsPending(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("deferred question")

	s.Cancel()

	assert.Equal(t, Unauthenticated, s.Phase())
	assert.Empty(t, s.PendingQuery())
}

func TestAuthStateCancelOutsidePromptIsNoOp(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("")
	s.Grant()

	s.Cancel()

	assert.Equal(t, Authenticated, s.Phase())
}

func TestAuthStateOpenPromptWhileAuthenticatedIsNoOp(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("")
	s.Grant()

	s.OpenPrompt("should be ignored")

	assert.Equal(t, Authenticated, s.Phase())
	assert.Empty(t, s.PendingQuery())
}

func TestAuthStateLogout(t *testing.T) {
	s := NewAuthState()
	s.OpenPrompt("")
	s.Grant()

	s.Logout()

	assert.Equal(t, Unauthenticated, s.Phase())
	assert.False(t, s.Authorized())
}
