package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalizer repairs arbitrary stored JSON into the canonical Project
// shape. Normalize is total and idempotent: it never fails, and running it
// on its own output is a no-op.
type Normalizer struct {
	now   func() time.Time
	newID func() string
}

// NewNormalizer creates a normalizer using the wall clock and random UUIDs.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewNormalizerAt creates a normalizer with injected clock and id source.
func NewNormalizerAt(now func() time.Time, newID func() string) *Normalizer {
	return &Normalizer{now: now, newID: newID}
}

// Normalize converts a permissive raw document into the canonical shape.
// Missing or wrong-typed fields get defaults, collections are always
// non-nil, legacy flat chat history is lifted into a single thread, and
// secret material in settings is stripped.
func (n *Normalizer) Normalize(raw RawProject) *Project {
	now := n.now().UTC()

	p := &Project{
		ID:          stringOr(raw.ID, ""),
		Title:       stringOr(raw.Title, "Untitled"),
		Abstract:    stringOr(raw.Abstract, ""),
		Owner:       stringOr(raw.Owner, "local"),
		CreatedAt:   timeOr(raw.CreatedAt, now),
		UpdatedAt:   timeOr(raw.UpdatedAt, now),
		Notation:    n.normalizeNotation(raw.Notation),
		Definitions: n.normalizeDefinitions(raw.Definitions),
		Facts:       n.normalizeFacts(raw.Facts),
		Lemmas:      n.normalizeLemmas(raw.Lemmas),
		Conjectures: n.normalizeConjectures(raw.Conjectures),
		Ideas:       n.normalizeIdeas(raw.Ideas),
		Pitfalls:    n.normalizePitfalls(raw.Pitfalls),
		Attempts:    n.normalizeAttempts(raw.Attempts, now),
		Attachments: n.normalizeAttachments(raw.Attachments),
		ChatThreads: n.normalizeChat(raw.ChatThreads, raw.ChatHistory, now),
		Settings:    normalizeSettings(raw.Settings),
	}
	return p
}

// NormalizeProject re-normalizes an already-typed document, for example a
// caller-supplied save payload. It round-trips through the raw shape so
// there is exactly one conversion path.
func (n *Normalizer) NormalizeProject(p *Project) (*Project, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	raw, err := ParseRaw(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return n.Normalize(raw), nil
}

type rawItem struct {
	ID           json.RawMessage `json:"id"`
	Title        json.RawMessage `json:"title"`
	Name         json.RawMessage `json:"name"`
	StatementTex json.RawMessage `json:"statementTex"`
	Description  json.RawMessage `json:"description"`
	Proof        json.RawMessage `json:"proof"`
	Evidence     json.RawMessage `json:"evidence"`
	Tags         json.RawMessage `json:"tags"`
	Refs         json.RawMessage `json:"refs"`
	DependsOn    json.RawMessage `json:"dependsOn"`
	LemmaID      json.RawMessage `json:"lemmaId"`
	Approach     json.RawMessage `json:"approach"`
	Outcome      json.RawMessage `json:"outcome"`
	MimeType     json.RawMessage `json:"mimeType"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    json.RawMessage `json:"createdAt"`
}

// items decodes a raw collection into per-item permissive shapes, dropping
// elements that are not JSON objects.
func items(raw json.RawMessage) []rawItem {
	out := []rawItem{}
	for _, el := range rawList(raw) {
		var item rawItem
		if err := json.Unmarshal(el, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (n *Normalizer) id(raw json.RawMessage) string {
	if s, ok := rawString(raw); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return n.newID()
}

// title resolves an item title, treating synthesized positional labels
// ("Lemma 3") as absent so renumbering on reorder stays correct.
func title(raw json.RawMessage, kind Kind) string {
	s := stringOr(raw, "")
	if IsAutoLabel(kind, s) {
		return ""
	}
	return s
}

func (n *Normalizer) normalizeNotation(raw json.RawMessage) []Notation {
	out := []Notation{}
	for _, item := range items(raw) {
		out = append(out, Notation{
			ID:          n.id(item.ID),
			Name:        title(item.Name, KindNotation),
			Description: stringOr(item.Description, ""),
		})
	}
	return out
}

func (n *Normalizer) normalizeDefinitions(raw json.RawMessage) []Definition {
	out := []Definition{}
	for _, item := range items(raw) {
		out = append(out, Definition{
			ID:           n.id(item.ID),
			Title:        title(item.Title, KindDefinition),
			StatementTex: stringOr(item.StatementTex, ""),
			Tags:         stringList(item.Tags),
		})
	}
	return out
}

func (n *Normalizer) normalizeFacts(raw json.RawMessage) []Fact {
	out := []Fact{}
	for _, item := range items(raw) {
		out = append(out, Fact{
			ID:           n.id(item.ID),
			Title:        title(item.Title, KindFact),
			StatementTex: stringOr(item.StatementTex, ""),
			Refs:         stringList(item.Refs),
		})
	}
	return out
}

func (n *Normalizer) normalizeLemmas(raw json.RawMessage) []Lemma {
	out := []Lemma{}
	for _, item := range items(raw) {
		out = append(out, Lemma{
			ID:           n.id(item.ID),
			Title:        title(item.Title, KindLemma),
			StatementTex: stringOr(item.StatementTex, ""),
			Proof:        stringOr(item.Proof, ""),
			DependsOn:    stringList(item.DependsOn),
		})
	}
	return out
}

func (n *Normalizer) normalizeConjectures(raw json.RawMessage) []Conjecture {
	out := []Conjecture{}
	for _, item := range items(raw) {
		out = append(out, Conjecture{
			ID:           n.id(item.ID),
			Title:        title(item.Title, KindConjecture),
			StatementTex: stringOr(item.StatementTex, ""),
			Evidence:     stringOr(item.Evidence, ""),
		})
	}
	return out
}

func (n *Normalizer) normalizeIdeas(raw json.RawMessage) []Idea {
	out := []Idea{}
	for _, item := range items(raw) {
		out = append(out, Idea{
			ID:          n.id(item.ID),
			Title:       title(item.Title, KindIdea),
			Description: stringOr(item.Description, ""),
		})
	}
	return out
}

func (n *Normalizer) normalizePitfalls(raw json.RawMessage) []Pitfall {
	out := []Pitfall{}
	for _, item := range items(raw) {
		out = append(out, Pitfall{
			ID:          n.id(item.ID),
			Title:       title(item.Title, KindPitfall),
			Description: stringOr(item.Description, ""),
		})
	}
	return out
}

func (n *Normalizer) normalizeAttempts(raw json.RawMessage, now time.Time) []Attempt {
	out := []Attempt{}
	for _, item := range items(raw) {
		out = append(out, Attempt{
			ID:        n.id(item.ID),
			LemmaID:   stringOr(item.LemmaID, ""),
			Approach:  stringOr(item.Approach, ""),
			Outcome:   stringOr(item.Outcome, ""),
			CreatedAt: timeOr(item.CreatedAt, now),
		})
	}
	return out
}

func (n *Normalizer) normalizeAttachments(raw json.RawMessage) []Attachment {
	out := []Attachment{}
	for _, item := range items(raw) {
		out = append(out, Attachment{
			ID:       n.id(item.ID),
			Name:     stringOr(item.Name, ""),
			MimeType: stringOr(item.MimeType, ""),
			Data:     stringOr(item.Data, ""),
		})
	}
	return out
}

type rawThread struct {
	ID        json.RawMessage `json:"id"`
	Title     json.RawMessage `json:"title"`
	Messages  json.RawMessage `json:"messages"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

type rawMessage struct {
	ID      json.RawMessage `json:"id"`
	Role    json.RawMessage `json:"role"`
	Content json.RawMessage `json:"content"`
}

// normalizeChat reshapes chat threads. When no threads exist but a legacy
// flat history does, the history is lifted into exactly one synthesized
// thread; the flat form is never carried forward.
func (n *Normalizer) normalizeChat(threads, history json.RawMessage, now time.Time) []ChatThread {
	out := []ChatThread{}
	for i, el := range rawList(threads) {
		var thread rawThread
		if err := json.Unmarshal(el, &thread); err != nil {
			continue
		}
		threadTitle := stringOr(thread.Title, "")
		if strings.TrimSpace(threadTitle) == "" {
			threadTitle = fmt.Sprintf("Thread #%d", i+1)
		}
		out = append(out, ChatThread{
			ID:        n.id(thread.ID),
			Title:     threadTitle,
			Messages:  n.normalizeMessages(thread.Messages),
			CreatedAt: timeOr(thread.CreatedAt, now),
			UpdatedAt: timeOr(thread.UpdatedAt, now),
		})
	}
	if len(out) > 0 {
		return out
	}

	legacy := n.normalizeMessages(history)
	if len(legacy) == 0 {
		return out
	}
	return []ChatThread{{
		ID:        n.newID(),
		Title:     "Thread #1",
		Messages:  legacy,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// normalizeMessages keeps only entries carrying string content. The role
// is coerced to assistant unless it is exactly "user".
func (n *Normalizer) normalizeMessages(raw json.RawMessage) []Message {
	out := []Message{}
	for _, el := range rawList(raw) {
		var msg rawMessage
		if err := json.Unmarshal(el, &msg); err != nil {
			continue
		}
		content, ok := rawString(msg.Content)
		if !ok {
			continue
		}
		role := RoleAssistant
		if s, ok := rawString(msg.Role); ok && s == string(RoleUser) {
			role = RoleUser
		}
		out = append(out, Message{
			ID:      n.id(msg.ID),
			Role:    role,
			Content: content,
		})
	}
	return out
}

// normalizeSettings keeps string-valued settings and drops anything that
// looks like an LLM API key. Secrets live in the user configuration store,
// never inside project documents.
func normalizeSettings(raw json.RawMessage) map[string]string {
	obj := rawObject(raw)
	if obj == nil {
		return nil
	}
	out := map[string]string{}
	for key, val := range obj {
		if isSecretKey(key) {
			continue
		}
		if s, ok := rawString(val); ok {
			out[key] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isSecretKey(key string) bool {
	folded := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(key, "_", ""), "-", ""))
	return strings.HasSuffix(folded, "apikey") || strings.HasSuffix(folded, "apitoken")
}
