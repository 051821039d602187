package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidRoster = errors.New("invalid roster")

type fileEntry struct {
	Name     string            `yaml:"name" validate:"required"`
	Position string            `yaml:"position"`
	Rate     float64           `yaml:"rate" validate:"gte=0"`
	Display  map[string]string `yaml:"display" validate:"omitempty,dive,keys,required,endkeys"`
}

type file struct {
	Employees []fileEntry `yaml:"employees" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse reads a YAML roster document.
func Parse(r io.Reader) (Roster, error) {
	var doc file
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Roster{}, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}
	if err := validate.Struct(doc); err != nil {
		return Roster{}, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}

	entries := make([]Entry, 0, len(doc.Employees))
	seen := map[string]struct{}{}
	for _, item := range doc.Employees {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return Roster{}, fmt.Errorf("%w: employee name is blank", ErrInvalidRoster)
		}
		if _, dup := seen[name]; dup {
			return Roster{}, fmt.Errorf("%w: duplicate employee %q", ErrInvalidRoster, name)
		}
		seen[name] = struct{}{}
		entries = append(entries, Entry{
			Name:     name,
			Position: strings.TrimSpace(item.Position),
			Rate:     decimal.NewFromFloat(item.Rate),
			Display:  item.Display,
		})
	}
	return New(entries...), nil
}
