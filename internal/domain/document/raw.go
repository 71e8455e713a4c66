package document

import (
	"encoding/json"
	"time"
)

// RawProject is the permissive input side of the normalization boundary.
// Every field is kept as raw JSON so documents written by older versions,
// or hand-edited on disk, can be decoded without failing. The Normalizer
// is the only conversion from RawProject to Project.
type RawProject struct {
	ID          json.RawMessage `json:"id"`
	Title       json.RawMessage `json:"title"`
	Abstract    json.RawMessage `json:"abstract"`
	Owner       json.RawMessage `json:"owner"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	UpdatedAt   json.RawMessage `json:"updatedAt"`
	Notation    json.RawMessage `json:"notation"`
	Definitions json.RawMessage `json:"definitions"`
	Facts       json.RawMessage `json:"facts"`
	Lemmas      json.RawMessage `json:"lemmas"`
	Conjectures json.RawMessage `json:"conjectures"`
	Ideas       json.RawMessage `json:"ideas"`
	Pitfalls    json.RawMessage `json:"pitfalls"`
	Attempts    json.RawMessage `json:"attempts"`
	Attachments json.RawMessage `json:"attachments"`
	ChatThreads json.RawMessage `json:"chatThreads"`

	// ChatHistory is the legacy flat message list written before threads
	// existed. It is lifted into a single thread during normalization and
	// never retained.
	ChatHistory json.RawMessage `json:"chatHistory"`

	Settings json.RawMessage `json:"settings"`
}

// ParseRaw decodes stored bytes into the permissive shape. A failure here
// means the bytes are not a JSON object at all, which callers surface as
// an internal error rather than defaulting.
func ParseRaw(data []byte) (RawProject, error) {
	var raw RawProject
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawProject{}, err
	}
	return raw, nil
}

func rawString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringOr(raw json.RawMessage, def string) string {
	if s, ok := rawString(raw); ok {
		return s
	}
	return def
}

func timeOr(raw json.RawMessage, def time.Time) time.Time {
	s, ok := rawString(raw)
	if !ok {
		return def
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return def
	}
	return t.UTC()
}

// rawList decodes a JSON array into its elements. Anything that is not an
// array yields nil, which normalization treats as an empty collection.
func rawList(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// stringList keeps only the string elements of a JSON array.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	for _, item := range rawList(raw) {
		if s, ok := rawString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func rawObject(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}
