package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/domain/roster"
	"shiftpay/internal/platform/i18n"
)

// Formatter renders payroll summaries as plain-text messages.
type Formatter struct {
	tr     *i18n.Translator
	roster roster.Roster
}

func NewFormatter(tr *i18n.Translator, r roster.Roster) *Formatter {
	return &Formatter{tr: tr, roster: r}
}

// Line is one rendered employee block, shared by the text and PDF outputs.
type Line struct {
	Name        string
	DisplayName string
	Position    string
	Shifts      string
	Rate        string
	Adjustment  int64
	Note        string
	Total       int64
}

// Lines returns the summary entries in display order: collated display
// name for lang, ties broken by canonical name.
func (f *Formatter) Lines(summary payroll.Summary, lang string) []Line {
	lines := make([]Line, 0, len(summary.Entries))
	for name, entry := range summary.Entries {
		line := Line{
			Name:        name,
			DisplayName: name,
			Shifts:      strconv.FormatFloat(entry.Shifts, 'f', -1, 64),
			Rate:        entry.Rate.String(),
			Adjustment:  entry.Adjustment,
			Note:        entry.Note,
			Total:       entry.Total,
		}
		if member, ok := f.roster.Lookup(name); ok {
			line.DisplayName = member.DisplayName(lang, f.tr.Default())
			line.Position = f.position(member.Position, lang)
		}
		lines = append(lines, line)
	}

	collator := collate.New(language.Make(lang))
	sort.Slice(lines, func(i, j int) bool {
		if c := collator.CompareString(lines[i].DisplayName, lines[j].DisplayName); c != 0 {
			return c < 0
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

func (f *Formatter) position(code, lang string) string {
	if code == "" {
		return ""
	}
	if label, ok := f.tr.Lookup("position."+strings.ToLower(code), lang); ok {
		return label
	}
	return code
}

// Title returns the localized header line for a period.
func (f *Formatter) Title(start, end time.Time, lang string) string {
	layout := f.tr.T("date_layout", lang)
	return fmt.Sprintf("%s: %s - %s", f.tr.T("report_title", lang), start.Format(layout), end.Format(layout))
}

// Format renders the report text.
func (f *Formatter) Format(start, end time.Time, summary payroll.Summary, lang string) string {
	var b strings.Builder
	b.WriteString(f.Title(start, end, lang))
	b.WriteString("\n\n")

	for _, line := range f.Lines(summary, lang) {
		b.WriteString(line.DisplayName)
		b.WriteString("\n")
		if line.Position != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.tr.T("position", lang), line.Position)
		}
		fmt.Fprintf(&b, "%s: %s\n", f.tr.T("shifts", lang), line.Shifts)
		fmt.Fprintf(&b, "%s: %s\n", f.tr.T("rate", lang), line.Rate)
		if line.Adjustment != 0 {
			fmt.Fprintf(&b, "%s: %+d (%s)\n", f.tr.T("adjustment", lang), line.Adjustment, line.Note)
		}
		fmt.Fprintf(&b, "%s: %d\n\n", f.tr.T("total", lang), line.Total)
	}

	fmt.Fprintf(&b, "%s: %d\n", f.tr.T("grand_total", lang), summary.GrandTotal)
	return b.String()
}

// ImageOptions labels a schedule image for lang.
func (f *Formatter) ImageOptions(lang string) ImageOptions {
	return ImageOptions{
		HeaderLabel: f.tr.T("employee", lang),
		DisplayName: func(name string) string {
			if member, ok := f.roster.Lookup(name); ok {
				return member.DisplayName(lang, f.tr.Default())
			}
			return name
		},
		Scale: 2,
	}
}

func (f *Formatter) DefaultLang() string {
	return f.tr.Default()
}
