package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
employees:
  - name: Alice
    position: Cook
    rate: 700
    display:
      ru: Алиса
      en: Alice A.
  - name: Bob
    position: Waiter
    rate: 600.5
  - name: Placeholder
    rate: 0
`

func TestParse(t *testing.T) {
	r, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"Alice", "Bob", "Placeholder"}, r.Names())

	alice, ok := r.Lookup("Alice")
	require.True(t, ok)
	assert.Equal(t, "Cook", alice.Position)
	assert.Equal(t, "700", alice.Rate.String())

	bob, _ := r.Lookup("Bob")
	assert.Equal(t, "600.5", bob.Rate.String())

	_, ok = r.Lookup("alice")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestParseRejectsNegativeRate(t *testing.T) {
	_, err := Parse(strings.NewReader("employees:\n  - name: X\n    rate: -1\n"))
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestParseRejectsDuplicatesAndBlankNames(t *testing.T) {
	_, err := Parse(strings.NewReader("employees:\n  - name: X\n  - name: X\n"))
	require.ErrorIs(t, err, ErrInvalidRoster)

	_, err = Parse(strings.NewReader("employees:\n  - name: \"\"\n    rate: 1\n"))
	require.ErrorIs(t, err, ErrInvalidRoster)

	_, err = Parse(strings.NewReader("employees:\n  - name: \"   \"\n    rate: 1000\n"))
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("employees:\n  - name: X\n    salary: 5\n"))
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestDisplayNameFallback(t *testing.T) {
	entry := Entry{Name: "Alice", Display: map[string]string{"ru": "Алиса", "vi": "A-lít"}}
	assert.Equal(t, "Алиса", entry.DisplayName("ru", "en"))
	assert.Equal(t, "Алиса", entry.DisplayName("en", "ru"))
	assert.Equal(t, "Алиса", entry.DisplayName("de", "fr"), "first translation by language code")
	assert.Equal(t, "Alice", Entry{Name: "Alice"}.DisplayName("en", "ru"))
}

func TestLookupReturnsCopies(t *testing.T) {
	r := New(Entry{Name: "Alice", Display: map[string]string{"en": "Alice"}})
	entry, _ := r.Lookup("Alice")
	entry.Display["en"] = "changed"
	again, _ := r.Lookup("Alice")
	assert.Equal(t, "Alice", again.Display["en"])
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
