package vectordb

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseTaxonomy reads taxonomy snippets from a JSON or CSV export.
//
// JSON shape: an array of {tag|category, content|description} records.
// CSV shape: a headered file with tag/category and content/description
// columns; extra columns (e.g. example messages) are appended to the
// snippet content.
func ParseTaxonomy(data []byte, filename string) ([]Snippet, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		return parseTaxonomyJSON(data)
	}
	return parseTaxonomyCSV(data)
}

func parseTaxonomyJSON(data []byte) ([]Snippet, error) {
	var records []struct {
		Tag         string `json:"tag"`
		Category    string `json:"category"`
		Content     string `json:"content"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing taxonomy JSON: %w", err)
	}

	var snippets []Snippet
	for _, rec := range records {
		tag := rec.Tag
		if tag == "" {
			tag = rec.Category
		}
		content := rec.Content
		if content == "" {
			content = rec.Description
		}
		if sn, ok := newSnippet(tag, content); ok {
			snippets = append(snippets, sn)
		}
	}
	return snippets, nil
}

func parseTaxonomyCSV(data []byte) ([]Snippet, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing taxonomy CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("taxonomy CSV has no data rows")
	}

	tagCol, contentCol := -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "tag", "category":
			tagCol = i
		case "content", "description":
			contentCol = i
		}
	}
	if tagCol < 0 || contentCol < 0 {
		return nil, fmt.Errorf("taxonomy CSV needs tag/category and content/description columns")
	}

	var snippets []Snippet
	for _, row := range rows[1:] {
		if len(row) <= tagCol || len(row) <= contentCol {
			continue
		}
		content := row[contentCol]
		for i, extra := range row {
			if i == tagCol || i == contentCol {
				continue
			}
			if extra = strings.TrimSpace(extra); extra != "" {
				content += "\n" + extra
			}
		}
		if sn, ok := newSnippet(row[tagCol], content); ok {
			snippets = append(snippets, sn)
		}
	}
	return snippets, nil
}

func newSnippet(tag, content string) (Snippet, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	content = strings.TrimSpace(content)
	if content == "" {
		return Snippet{}, false
	}
	return Snippet{
		ID:      uuid.NewString(),
		Content: content,
		Tag:     tag,
	}, true
}
