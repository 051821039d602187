package roster

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry is one employee's pay configuration. Name is the exact label used
// in the schedule table.
type Entry struct {
	Name     string            `json:"name"`
	Position string            `json:"position"`
	Rate     decimal.Decimal   `json:"rate"`
	Display  map[string]string `json:"display,omitempty"`
}

// Roster is an immutable name-keyed set of entries.
type Roster struct {
	entries map[string]Entry
}

func New(entries ...Entry) Roster {
	r := Roster{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		r.entries[entry.Name] = entry.clone()
	}
	return r
}

func (r Roster) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return entry.clone(), true
}

func (r Roster) Len() int {
	return len(r.entries)
}

// Names returns every canonical name in byte order.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisplayName resolves a localized name: requested language, then the
// fallback language, then the first translation by language code, then the
// canonical name.
func (e Entry) DisplayName(lang, fallback string) string {
	if value := e.Display[lang]; value != "" {
		return value
	}
	if value := e.Display[fallback]; value != "" {
		return value
	}
	langs := make([]string, 0, len(e.Display))
	for code, value := range e.Display {
		if value != "" {
			langs = append(langs, code)
		}
	}
	if len(langs) > 0 {
		sort.Strings(langs)
		return e.Display[langs[0]]
	}
	return e.Name
}

func (e Entry) clone() Entry {
	if e.Display == nil {
		return e
	}
	display := make(map[string]string, len(e.Display))
	for k, v := range e.Display {
		display[k] = v
	}
	e.Display = display
	return e
}
