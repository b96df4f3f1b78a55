package triage

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"strings"
)

// conventionalPaths are the response-mapping candidates tried after the
// configured override, in priority order.
var conventionalPaths = []string{
	"data/response_templates.json",
	"DATA/response_templates.json",
	"data/response_templates.csv",
	"DATA/response_templates.csv",
}

// Resolver loads the category -> response-template mapping and looks up
// the template for a classification. The mapping is re-read on every
// lookup so template edits take effect without a restart. A missing or
// broken mapping source is not an error; the template step is skipped.
type Resolver struct {
	overridePath string
	debug        bool
}

// NewResolver creates a resolver with an optional override path tried
// before the conventional locations.
func NewResolver(overridePath string, debug bool) *Resolver {
	return &Resolver{overridePath: overridePath, debug: debug}
}

// Lookup returns the response template for the category, if any.
func (r *Resolver) Lookup(category string) (string, bool) {
	mapping := r.Load()
	text, ok := mapping[strings.ToLower(strings.TrimSpace(category))]
	return text, ok
}

// Load reads the first candidate source that yields at least one entry.
// Candidates are used exclusively; there is no merging across sources.
func (r *Resolver) Load() map[string]string {
	candidates := make([]string, 0, len(conventionalPaths)+1)
	if r.overridePath != "" {
		candidates = append(candidates, r.overridePath)
	}
	candidates = append(candidates, conventionalPaths...)

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var mapping map[string]string
		if strings.HasSuffix(strings.ToLower(path), ".csv") {
			mapping = parseCSVMapping(data)
		} else {
			mapping = parseJSONMapping(data)
		}

		if len(mapping) > 0 {
			if r.debug {
				log.Printf("loaded response mapping from %s (%d entries)", path, len(mapping))
			}
			return mapping
		}
	}

	if r.debug {
		log.Printf("no response mapping found; template step will be skipped")
	}
	return nil
}

// parseJSONMapping accepts a flat object of category -> text, or an
// array of {category, response_text|response} records.
func parseJSONMapping(data []byte) map[string]string {
	data = stripBOM(data)

	mapping := map[string]string{}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err == nil {
		for k, v := range obj {
			putEntry(mapping, k, v)
		}
		return mapping
	}

	var records []struct {
		Category     string `json:"category"`
		ResponseText string `json:"response_text"`
		Response     string `json:"response"`
	}
	if err := json.Unmarshal(data, &records); err == nil {
		for _, rec := range records {
			text := rec.ResponseText
			if text == "" {
				text = rec.Response
			}
			putEntry(mapping, rec.Category, text)
		}
	}
	return mapping
}

// parseCSVMapping accepts a two-column CSV, headered with
// category/response_text (or response) columns or headerless, with the
// delimiter auto-detected among ';', ',', tab and '|'.
func parseCSVMapping(data []byte) map[string]string {
	text := string(stripBOM(data))
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) == 0 {
		return nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(lines[0])
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil || len(rows) == 0 {
		return nil
	}

	keyCol, valCol := 0, 1
	start := 0
	if isHeaderRow(rows[0]) {
		for i, col := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(col)) {
			case "category":
				keyCol = i
			case "response_text", "response":
				valCol = i
			}
		}
		start = 1
	}

	mapping := map[string]string{}
	for _, row := range rows[start:] {
		if len(row) <= keyCol || len(row) <= valCol {
			continue
		}
		putEntry(mapping, row[keyCol], row[valCol])
	}
	return mapping
}

func isHeaderRow(row []string) bool {
	for _, col := range row {
		if strings.ToLower(strings.TrimSpace(col)) == "category" {
			return true
		}
	}
	return false
}

// detectDelimiter picks the candidate delimiter occurring most often in
// the first line, defaulting to a comma.
func detectDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, d := range []rune{';', ',', '\t', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// putEntry normalizes and stores one mapping entry, dropping blanks.
func putEntry(mapping map[string]string, key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return
	}
	mapping[key] = value
}

func stripBOM(data []byte) []byte {
	return []byte(strings.TrimPrefix(string(data), "\ufeff"))
}
