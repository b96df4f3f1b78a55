package classifier

import (
	"context"
	"encoding/json"
)

// Categories is the closed set of ticket classifications. The tags are
// the live taxonomy tags in the helpdesk, historical spellings included.
var Categories = map[string]bool{
	"refund":                      true,
	"regeneration":                true,
	"sppam":                       true,
	"pictures-not-received-spam":  true,
	"invoice":                     true,
	"reupload":                    true,
	"influencers":                 true,
	"team-info":                   true,
	"feedback":                    true,
	"ghost-email":                 true,
	"linkedin":                    true,
	"miscellaneous":               true,
}

// CategoryMiscellaneous is the catch-all classification.
const CategoryMiscellaneous = "miscellaneous"

// NormalizeCategory coerces any value outside the closed category set
// to miscellaneous.
func NormalizeCategory(category string) string {
	if Categories[category] {
		return category
	}
	return CategoryMiscellaneous
}

// Result is a single classification decision. It is serialized verbatim
// into the internal ticket note.
type Result struct {
	Classification string `json:"classification"`
	Confidence     int    `json:"confidence"`
	Reasoning      string `json:"reasoning"`
}

// NoteBody renders the result as the JSON body of the private
// classification note.
func (r Result) NoteBody() string {
	data, _ := json.Marshal(r)
	return string(data)
}

// Classifier assigns a category to one ticket conversation.
//
// Classify returns an error only for transport-level failures (the LLM
// call itself, retrieval); malformed model output is recovered locally
// and degrades to a low-confidence miscellaneous result instead.
type Classifier interface {
	Classify(ctx context.Context, subject, conversation string) (Result, error)
	Name() string
}
