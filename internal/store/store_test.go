package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/alkime/voicescribe/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// brokenBackend fails every call.
type brokenBackend struct{}

func (brokenBackend) Load(string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (brokenBackend) Save(string, []byte) error { return errors.New("disk on fire") }

func TestValue_MissingKeyReturnsDefault(t *testing.T) {
	v := store.NewValue(store.NewMemory(), "notes", []note{{Title: "default"}})

	assert.Equal(t, []note{{Title: "default"}}, v.Get())
}

func TestValue_SetThenGet(t *testing.T) {
	backend := store.NewMemory()
	v := store.NewValue[[]note](backend, "notes", nil)

	v.Set([]note{{Title: "a", Count: 1}, {Title: "b", Count: 2}})

	assert.Equal(t, []note{{Title: "a", Count: 1}, {Title: "b", Count: 2}}, v.Get())

	// A second accessor on the same key sees the persisted data.
	again := store.NewValue[[]note](backend, "notes", nil)
	assert.Len(t, again.Get(), 2)
}

func TestValue_CorruptedDataReturnsDefault(t *testing.T) {
	backend := store.NewMemory()
	require.NoError(t, backend.Save("notes", []byte("{not json")))

	v := store.NewValue(backend, "notes", []note{})

	assert.NotPanics(t, func() {
		assert.Equal(t, []note{}, v.Get())
	})
}

func TestValue_WrongShapeReturnsDefault(t *testing.T) {
	backend := store.NewMemory()
	require.NoError(t, backend.Save("theme", []byte(`{"not":"a string"}`)))

	v := store.NewValue(backend, "theme", "light")

	assert.Equal(t, "light", v.Get())
}

func TestLazyValue_ProducerRunsOnce(t *testing.T) {
	calls := 0
	v := store.NewLazyValue(store.NewMemory(), "theme", func() string {
		calls++
		return "dark"
	})

	assert.Zero(t, calls, "producer must not run before first read")
	assert.Equal(t, "dark", v.Get())
	assert.Equal(t, "dark", v.Get())
	assert.Equal(t, 1, calls)
}

func TestLazyValue_ProducerSkippedWhenStored(t *testing.T) {
	backend := store.NewMemory()
	require.NoError(t, backend.Save("theme", []byte(`"light"`)))

	v := store.NewLazyValue(backend, "theme", func() string {
		t.Fatal("producer should not run when a value is stored")
		return ""
	})

	assert.Equal(t, "light", v.Get())
}

func TestValue_BrokenBackendNeverRaises(t *testing.T) {
	v := store.NewValue(brokenBackend{}, "notes", []note{{Title: "fallback"}})

	assert.NotPanics(t, func() {
		v.Set([]note{{Title: "lost"}})
	})
	assert.Equal(t, []note{{Title: "fallback"}}, v.Get())
}

func TestValue_UnencodableValueIsSwallowed(t *testing.T) {
	backend := store.NewMemory()
	v := store.NewValue[any](backend, "weird", "ok")

	assert.NotPanics(t, func() {
		v.Set(make(chan int))
	})

	_, ok, err := backend.Load("weird")
	require.NoError(t, err)
	assert.False(t, ok, "failed encode must not write anything")
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	db, err := store.OpenSQLite(path)
	require.NoError(t, err)

	v := store.NewValue[[]note](db, "notes", nil)
	v.Set([]note{{Title: "persisted", Count: 3}})
	v.Set([]note{{Title: "overwritten", Count: 4}})
	require.NoError(t, db.Close())

	reopened, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got := store.NewValue[[]note](reopened, "notes", nil).Get()
	assert.Equal(t, []note{{Title: "overwritten", Count: 4}}, got)
}

func TestSQLite_MissingKey(t *testing.T) {
	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	data, ok, err := db.Load("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}
