// Package auth manages the device's credential state. Credential issuance
// itself is external: a login hands us an opaque bearer token already bound
// to a user identity, and we only store it, expose it, and forget it.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Mode distinguishes a locally generated guest identity from a remote one.
type Mode string

const (
	ModeGuest         Mode = "guest"
	ModeAuthenticated Mode = "authenticated"
)

// GuestPrefix marks locally generated identities. Guests have no remote
// counterpart and never sync.
const GuestPrefix = "guest-"

// Session is the current credential state of this device. Local store keys
// are namespaced by UserID, so switching accounts never mixes activity logs.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token,omitempty"`
	Mode   Mode   `json:"mode"`

	// PullDone records whether a full pull from the remote store has
	// already happened in this login session. It is the persisted form of
	// the sync cursor: created false at login, cleared at logout.
	PullDone bool `json:"pullDone"`
}

// IsGuest reports whether this session has no remote identity.
func (s *Session) IsGuest() bool {
	return s.Mode == ModeGuest
}

const (
	sessionFile = "session.json"
	guestFile   = "guest-id"
)

// Manager persists sessions under a state directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// DefaultStateDir resolves the session state directory:
// $XDG_STATE_HOME/dailypuzzle, falling back to ~/.local/state/dailypuzzle.
func DefaultStateDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "dailypuzzle"), nil
}

// Current returns the active session. With no stored login this is a guest
// session using this device's stable guest identity.
func (m *Manager) Current() (*Session, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return m.guestSession()
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// Login stores a new authenticated session. The sync cursor starts cleared,
// so the next reconciliation performs a full pull.
func (m *Manager) Login(userID, token string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return nil, errors.New("login requires a user id and a token")
	}

	s := &Session{UserID: userID, Token: token, Mode: ModeAuthenticated}
	if err := m.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save rewrites the stored session.
func (m *Manager) Save(s *Session) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, sessionFile), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Logout discards the stored credential. The guest identity file is kept so
// guest play resumes under the same local identity.
func (m *Manager) Logout() error {
	err := os.Remove(filepath.Join(m.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// guestSession returns a session for this device's guest identity, creating
// and persisting the identity on first use.
func (m *Manager) guestSession() (*Session, error) {
	path := filepath.Join(m.dir, guestFile)

	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if strings.HasPrefix(id, GuestPrefix) {
			return &Session{UserID: id, Mode: ModeGuest}, nil
		}
		// Corrupt identity file: fall through and regenerate.
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read guest id: %w", err)
	}

	id := GuestPrefix + uuid.NewString()
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write guest id: %w", err)
	}
	return &Session{UserID: id, Mode: ModeGuest}, nil
}
