package session_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func newTestManager(t *testing.T) (*session.Manager, *store.Memory) {
	t.Helper()

	backend := store.NewMemory()
	seq := 0
	m := session.NewManager(backend,
		session.WithClock(func() time.Time { return fixedNow }),
		session.WithIDGenerator(func() (string, error) {
			seq++
			return fmt.Sprintf("id-%d", seq), nil
		}),
	)

	return m, backend
}

func TestSave_UniqueNamePrepends(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Save("first text", "First")
	require.NoError(t, err)

	sess, err := m.Save("second text", "Second")
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, sess, list[0], "newest session goes to the front")
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
}

func TestSave_EmptyNameSynthesized(t *testing.T) {
	m, _ := newTestManager(t)

	sess, err := m.Save("hello", "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Session \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), sess.Name)
	assert.Equal(t, "hello", sess.Text)
	assert.Equal(t, fixedNow, sess.Date)
}

func TestSave_SynthesizedNamesStayUnique(t *testing.T) {
	m, _ := newTestManager(t)

	a, err := m.Save("a", "   ")
	require.NoError(t, err)
	b, err := m.Save("b", "")
	require.NoError(t, err)

	assert.Equal(t, "Session 2026-03-14 09:26:53", a.Name)
	assert.Equal(t, "Session 2026-03-14 09:26:53 (2)", b.Name)
}

func TestSave_DuplicateNameRejected(t *testing.T) {
	m, backend := newTestManager(t)

	_, err := m.Save("one", "A")
	require.NoError(t, err)
	before, _, _ := backend.Load(session.StoreKey)

	_, err = m.Save("two", "A")
	require.ErrorIs(t, err, session.ErrDuplicateName)

	assert.Len(t, m.List(), 1)
	after, _, _ := backend.Load(session.StoreKey)
	assert.Equal(t, before, after, "failed save must not touch the store")
}

func TestSave_DuplicateCheckIsCaseSensitive(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Save("one", "Notes")
	require.NoError(t, err)
	_, err = m.Save("two", "notes")
	require.NoError(t, err)

	assert.Len(t, m.List(), 2)
}

func TestSave_NameIsTrimmed(t *testing.T) {
	m, _ := newTestManager(t)

	sess, err := m.Save("one", "  A\t")
	require.NoError(t, err)
	assert.Equal(t, "A", sess.Name)

	_, err = m.Save("two", "A ")
	require.ErrorIs(t, err, session.ErrDuplicateName)
	assert.Len(t, m.List(), 1)
}

func TestSave_PersistsThroughStore(t *testing.T) {
	m, backend := newTestManager(t)

	_, err := m.Save("persist me", "Keep")
	require.NoError(t, err)

	reloaded := session.NewManager(backend)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Keep", list[0].Name)
	assert.Equal(t, "persist me", list[0].Text)
	assert.True(t, fixedNow.Equal(list[0].Date))
}

func TestLoad(t *testing.T) {
	m, backend := newTestManager(t)

	saved, err := m.Save("body", "Loaded")
	require.NoError(t, err)
	before, _, _ := backend.Load(session.StoreKey)

	got, err := m.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// Mutating the returned copy leaves the collection untouched.
	got.Name = "changed"
	got.Text = "changed"
	again, err := m.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, again)

	after, _, _ := backend.Load(session.StoreKey)
	assert.Equal(t, before, after)

	_, err = m.Load("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDelete(t *testing.T) {
	m, _ := newTestManager(t)

	a, err := m.Save("a", "A")
	require.NoError(t, err)
	b, err := m.Save("b", "B")
	require.NoError(t, err)

	m.Delete(a.ID)
	assert.Equal(t, []session.Session{b}, m.List())

	m.Delete("does-not-exist")
	assert.Equal(t, []session.Session{b}, m.List())
}

func TestRename(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		newName   string
		wantErr   error
		wantNames []string
	}{
		{
			name:      "new unique name",
			target:    "id-1",
			newName:   "Renamed",
			wantNames: []string{"B", "Renamed"},
		},
		{
			name:      "own current name",
			target:    "id-1",
			newName:   "A",
			wantNames: []string{"B", "A"},
		},
		{
			name:      "surrounding whitespace trimmed",
			target:    "id-2",
			newName:   "  C  ",
			wantNames: []string{"C", "A"},
		},
		{
			name:      "other session's name",
			target:    "id-1",
			newName:   "B",
			wantErr:   session.ErrDuplicateName,
			wantNames: []string{"B", "A"},
		},
		{
			name:      "blank name",
			target:    "id-1",
			newName:   "   ",
			wantErr:   session.ErrInvalidName,
			wantNames: []string{"B", "A"},
		},
		{
			name:      "unknown id",
			target:    "id-9",
			newName:   "Z",
			wantErr:   session.ErrNotFound,
			wantNames: []string{"B", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			_, err := m.Save("text a", "A")
			require.NoError(t, err)
			_, err = m.Save("text b", "B")
			require.NoError(t, err)

			err = m.Rename(tt.target, tt.newName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			var names []string
			for _, s := range m.List() {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRename_PreservesOtherFields(t *testing.T) {
	m, _ := newTestManager(t)

	saved, err := m.Save("original text", "Before")
	require.NoError(t, err)

	require.NoError(t, m.Rename(saved.ID, "After"))

	got, err := m.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.Text, got.Text)
	assert.Equal(t, saved.Date, got.Date)
}

func TestNewManager_DefaultIDsAreTimeOrdered(t *testing.T) {
	m := session.NewManager(store.NewMemory())

	first, err := m.Save("a", "")
	require.NoError(t, err)
	second, err := m.Save("b", "second")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, first.ID, 36)
}
