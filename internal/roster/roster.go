// Package roster extracts member names from a comma-separated list.
// The names feed autocomplete only and never touch ledger state.
package roster

import (
	"regexp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var header = regexp.MustCompile(`(?i)^names?$`)
var quoted = regexp.MustCompile(`^"(.+)"$`)

// Parse returns the distinct names from the first column of text, sorted in
// locale order. A first row reading "name" or "names" is treated as a header.
func Parse(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	seen := make(map[string]bool)
	var names []string
	for i, row := range ParseCSV(text) {
		if len(row) == 0 {
			continue
		}
		name := quoted.ReplaceAllString(strings.TrimSpace(row[0]), "$1")
		if name == "" {
			continue
		}
		if i == 0 && header.MatchString(name) {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	collate.New(language.English).SortStrings(names)
	return names
}

// ParseCSV splits text into rows of cells. Cells are separated by commas and
// may be double-quoted, with "" standing for a literal quote. Rows end at \n;
// \r is dropped outside quotes. Rows whose cells are all blank are removed.
func ParseCSV(text string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cell.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteRune(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			row = append(row, cell.String())
			cell.Reset()
		case c == '\n':
			row = append(row, cell.String())
			rows = append(rows, row)
			row = nil
			cell.Reset()
		case c != '\r':
			cell.WriteRune(c)
		}
	}
	row = append(row, cell.String())
	rows = append(rows, row)

	out := rows[:0]
	for _, r := range rows {
		if !blank(r) {
			out = append(out, r)
		}
	}
	return out
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
