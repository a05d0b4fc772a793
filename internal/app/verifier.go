package app

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier decides whether a credential pair grants administrator
// access. The shipped implementation checks one fixed pair; a real deployment
// plugs in delegated verification here.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticVerifier accepts exactly one username/password pair. The password is
// hashed at construction so the comparison path never touches the plaintext
// and runs in constant time.
type StaticVerifier struct {
	username     string
	passwordHash []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticVerifier{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (v *StaticVerifier) Verify(username, password string) bool {
	if username != v.username {
		// Burn a comparison anyway so the username check doesn't time-leak.
		_ = bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
}
