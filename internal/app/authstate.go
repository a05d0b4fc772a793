package app

// AuthPhase is the session's authorization state.
type AuthPhase int

const (
	Unauthenticated AuthPhase = iota
	Prompting
	Authenticated
)

// AuthState is the per-session authorization state machine. It is owned by
// one Session and mutated only under that session's turn lock, so it carries
// no locking of its own. pendingQuery is non-empty only while the credential
// prompt is open and holds the query to replay after a successful login.
type AuthState struct {
	phase        AuthPhase
	pendingQuery string
}

func NewAuthState() *AuthState {
	return &AuthState{phase: Unauthenticated}
}

func (s *AuthState) Phase() AuthPhase { return s.phase }

func (s *AuthState) Authorized() bool { return s.phase == Authenticated }

func (s *AuthState) PromptOpen() bool { return s.phase == Prompting }

func (s *AuthState) PendingQuery() string { return s.pendingQuery }

// OpenPrompt moves to Prompting. pending is the query to replay after login:
// empty when the user typed a bare trigger phrase, the original question when
// the engine's refusal re-triggered the prompt. Re-opening an already-open
// prompt without a new deferred query keeps the existing one; only a grant or
// an explicit cancel may drop it.
func (s *AuthState) OpenPrompt(pending string) {
	if s.phase == Authenticated {
		return
	}
	if s.phase == Prompting && pending == "" {
		return
	}
	s.phase = Prompting
	s.pendingQuery = pending
}

// Grant records a successful credential check and returns the deferred query,
// clearing it so the replay can only happen once.
func (s *AuthState) Grant() string {
	s.phase = Authenticated
	pending := s.pendingQuery
	s.pendingQuery = ""
	return pending
}

// Reject records a failed credential check: the prompt stays open and the
// pending query survives so a retry can still replay it.
func (s *AuthState) Reject() {}

// Cancel closes the prompt without granting access; the deferred query is
// dropped, never replayed.
func (s *AuthState) Cancel() {
	if s.phase != Prompting {
		return
	}
	s.phase = Unauthenticated
	s.pendingQuery = ""
}

// Logout revokes access. Any open prompt state is discarded too.
func (s *AuthState) Logout() {
	s.phase = Unauthenticated
	s.pendingQuery = ""
}
