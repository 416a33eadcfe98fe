// Package session manages the ordered collection of saved transcripts.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alkime/voicescribe/internal/store"
	"github.com/alkime/voicescribe/pkg/collections"
	"github.com/google/uuid"
)

// StoreKey is the persistence key holding the session list.
const StoreKey = "voicescribe.sessions"

// nameLayout formats the timestamp used for synthesized session names.
const nameLayout = "2006-01-02 15:04:05"

var (
	ErrDuplicateName = errors.New("a session with this name already exists")
	ErrInvalidName   = errors.New("session name cannot be empty")
	ErrNotFound      = errors.New("session not found")
)

// Session is a named, persisted snapshot of a transcript.
type Session struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Manager provides CRUD over the session list. Every mutation is written
// through to the backing store before the call returns.
type Manager struct {
	mu       sync.Mutex
	sessions []Session
	value    *store.Value[[]Session]
	now      func() time.Time
	newID    func() (string, error)
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for dates and synthesized names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newID = gen }
}

// NewManager loads the session list from backend.
func NewManager(backend store.Backend, opts ...Option) *Manager {
	m := &Manager{
		value:  store.NewValue[[]Session](backend, StoreKey, nil),
		now:    time.Now,
		newID:  newTimeOrderedID,
		logger: slog.Default().With("component", "session"),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.sessions = m.value.Get()

	return m
}

// newTimeOrderedID returns a UUIDv7, whose leading bits encode the creation time.
func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	return id.String(), nil
}

// List returns a copy of all sessions, newest first.
func (m *Manager) List() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.sessions)
}

// Save stores text as a new session at the front of the list. Surrounding
// whitespace is trimmed from the name before it is compared and stored, so
// " A" is saved as "A" and collides with an existing "A". A blank name is
// replaced by one derived from the current time. Saving under a name that is
// already in use fails with ErrDuplicateName and changes nothing.
func (m *Manager) Save(text, requestedName string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	name := strings.TrimSpace(requestedName)

	if name == "" {
		name = m.synthesizeName(now)
	} else if m.nameTaken(name, "") {
		return Session{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	id, err := m.newID()
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:   id,
		Name: name,
		Text: text,
		Date: now.UTC(),
	}

	m.sessions = slices.Insert(m.sessions, 0, sess)
	m.persist()

	m.logger.Info("session saved", "id", sess.ID, "name", sess.Name, "chars", len(text))

	return sess, nil
}

// Load returns a copy of the session with the given id.
func (m *Manager) Load(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := collections.Find(m.sessions, byID(id))
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return sess, nil
}

// Delete removes the session with the given id. Deleting an unknown id is a
// no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.sessions, byID(id))
	if idx < 0 {
		return
	}

	m.sessions = slices.Delete(m.sessions, idx, idx+1)
	m.persist()

	m.logger.Info("session deleted", "id", id)
}

// Rename changes the name of a session. Only the name is modified, and it is
// trimmed the same way Save trims it.
func (m *Manager) Rename(id, newName string) error {
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrInvalidName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.sessions, byID(id))
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if m.nameTaken(name, id) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	if m.sessions[idx].Name == name {
		return nil
	}

	old := m.sessions[idx].Name
	m.sessions[idx].Name = name
	m.persist()

	m.logger.Info("session renamed", "id", id, "from", old, "to", name)

	return nil
}

// nameTaken reports whether a session other than exceptID uses name.
// Names compare exactly (case-sensitive).
func (m *Manager) nameTaken(name, exceptID string) bool {
	return collections.Any(m.sessions, func(s Session) bool {
		return s.Name == name && s.ID != exceptID
	})
}

// synthesizeName derives a unique name from t.
func (m *Manager) synthesizeName(t time.Time) string {
	base := "Session " + t.Format(nameLayout)
	name := base

	for n := 2; m.nameTaken(name, ""); n++ {
		name = fmt.Sprintf("%s (%d)", base, n)
	}

	return name
}

func (m *Manager) persist() {
	m.value.Set(m.sessions)
}

func byID(id string) func(Session) bool {
	return func(s Session) bool { return s.ID == id }
}
