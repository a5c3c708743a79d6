// Package pattern resolves date-placeholder templates into filesystem
// match expressions and maps source files to their archive destinations.
//
// A template mixes literal text with %Y, %m and %d placeholders, for
// example "%Y/%m/%d/*.log". Resolving against a date yields the path of
// one daily partition; resolving with wildcards yields a glob that
// matches every partition at once.
package pattern

import (
	"fmt"
	"strings"
	"time"
)

// CompressedExt is appended to a source file name to obtain its
// artifact name. It is appended, never substituted, so two source names
// that differ only in extension cannot collide in the archive tree.
const CompressedExt = ".gz"

type segmentKind int

const (
	segLiteral segmentKind = iota
	segYear
	segMonth
	segDay
)

type segment struct {
	kind    segmentKind
	literal string
}

// Template is an immutable, parsed placeholder pattern.
type Template struct {
	raw      string
	segments []segment
}

// Parse builds a Template from its text form. %Y, %m and %d are the
// date placeholders, %% is a literal percent sign. Any other %-token is
// an error. A template without placeholders is legal and behaves as a
// plain literal pattern.
func Parse(raw string) (*Template, error) {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] != '%' {
			lit.WriteByte(raw[i])
			continue
		}
		if i+1 >= len(raw) {
			return nil, fmt.Errorf("pattern %q: trailing %%", raw)
		}
		i++
		switch raw[i] {
		case 'Y':
			flush()
			segs = append(segs, segment{kind: segYear})
		case 'm':
			flush()
			segs = append(segs, segment{kind: segMonth})
		case 'd':
			flush()
			segs = append(segs, segment{kind: segDay})
		case '%':
			lit.WriteByte('%')
		default:
			return nil, fmt.Errorf("pattern %q: unknown placeholder %%%c", raw, raw[i])
		}
	}
	flush()

	return &Template{raw: raw, segments: segs}, nil
}

// String returns the original text form of the template.
func (t *Template) String() string {
	return t.raw
}

// Resolve substitutes the placeholders with the four-digit year and
// zero-padded month and day of the given date, producing the concrete
// pattern for a single daily partition.
func (t *Template) Resolve(day time.Time) string {
	var b strings.Builder
	for _, s := range t.segments {
		switch s.kind {
		case segLiteral:
			b.WriteString(s.literal)
		case segYear:
			b.WriteString(fmt.Sprintf("%04d", day.Year()))
		case segMonth:
			b.WriteString(fmt.Sprintf("%02d", int(day.Month())))
		case segDay:
			b.WriteString(fmt.Sprintf("%02d", day.Day()))
		}
	}
	return b.String()
}

// Wildcard substitutes every placeholder with a match-any glob segment.
// Discovery uses this single expression to enumerate all historical
// partitions in one pass; age filtering is then done per file on its
// modification time. Directory names are advisory, file timestamps are
// authoritative for retention decisions.
func (t *Template) Wildcard() string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.kind == segLiteral {
			b.WriteString(s.literal)
		} else {
			b.WriteString("*")
		}
	}
	return b.String()
}
