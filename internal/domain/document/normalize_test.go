package document

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	return NewNormalizerAt(
		func() time.Time { return fixed },
		func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	)
}

func mustRaw(t *testing.T, src string) RawProject {
	t.Helper()
	raw, err := ParseRaw([]byte(src))
	require.NoError(t, err)
	return raw
}

func TestNormalize_EmptyObject(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{}`))

	require.Equal(t, "Untitled", p.Title)
	require.Equal(t, "local", p.Owner)
	require.Equal(t, "", p.Abstract)
	require.Equal(t, p.CreatedAt, p.UpdatedAt)

	// Every collection must be present and non-nil.
	require.NotNil(t, p.Notation)
	require.NotNil(t, p.Definitions)
	require.NotNil(t, p.Facts)
	require.NotNil(t, p.Lemmas)
	require.NotNil(t, p.Conjectures)
	require.NotNil(t, p.Ideas)
	require.NotNil(t, p.Pitfalls)
	require.NotNil(t, p.Attempts)
	require.NotNil(t, p.Attachments)
	require.NotNil(t, p.ChatThreads)
}

func TestNormalize_WrongTypedFields(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"title": 42,
		"owner": ["x"],
		"abstract": {"a": 1},
		"createdAt": "not a time",
		"lemmas": "nope",
		"facts": {"not": "a list"}
	}`))

	require.Equal(t, "Untitled", p.Title)
	require.Equal(t, "local", p.Owner)
	require.Equal(t, "", p.Abstract)
	require.Equal(t, []Lemma{}, p.Lemmas)
	require.Equal(t, []Fact{}, p.Facts)
}

func TestNormalize_LemmaDefaults(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"lemmas": [
			{"title": "Key bound", "statementTex": "x \\le y"},
			{"id": "lem-2", "proof": 7, "dependsOn": ["fact-1", 3, "lem-1"]},
			"not an object"
		]
	}`))

	require.Len(t, p.Lemmas, 2)
	require.Equal(t, "id-1", p.Lemmas[0].ID)
	require.Equal(t, "Key bound", p.Lemmas[0].Title)
	require.Equal(t, "", p.Lemmas[0].Proof)
	require.Equal(t, []string{}, p.Lemmas[0].DependsOn)

	require.Equal(t, "lem-2", p.Lemmas[1].ID)
	require.Equal(t, "", p.Lemmas[1].Proof)
	require.Equal(t, []string{"fact-1", "lem-1"}, p.Lemmas[1].DependsOn)
}

func TestNormalize_AutoLabelTitlesCleared(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"lemmas": [
			{"id": "a", "title": "Lemma 3"},
			{"id": "b", "title": "lemma 12"},
			{"id": "c", "title": "Fact 1"},
			{"id": "d", "title": "Lemma three"}
		],
		"facts": [{"id": "e", "title": "Fact 2"}]
	}`))

	require.Equal(t, "", p.Lemmas[0].Title)
	require.Equal(t, "", p.Lemmas[1].Title)
	// A label for a different kind is a real title.
	require.Equal(t, "Fact 1", p.Lemmas[2].Title)
	require.Equal(t, "Lemma three", p.Lemmas[3].Title)
	require.Equal(t, "", p.Facts[0].Title)
}

func TestNormalize_ChatThreads(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"chatThreads": [
			{
				"title": "",
				"messages": [
					{"role": "user", "content": "hello"},
					{"role": "system", "content": "coerced"},
					{"role": "user", "content": 99},
					{"content": "no role"}
				]
			},
			{"id": "th-2", "title": "Renamed", "messages": "junk"}
		]
	}`))

	require.Len(t, p.ChatThreads, 2)

	first := p.ChatThreads[0]
	require.Equal(t, "Thread #1", first.Title)
	require.Len(t, first.Messages, 3)
	require.Equal(t, RoleUser, first.Messages[0].Role)
	require.Equal(t, RoleAssistant, first.Messages[1].Role)
	require.Equal(t, RoleAssistant, first.Messages[2].Role)
	require.Equal(t, "no role", first.Messages[2].Content)

	second := p.ChatThreads[1]
	require.Equal(t, "th-2", second.ID)
	require.Equal(t, "Renamed", second.Title)
	require.Equal(t, []Message{}, second.Messages)
}

func TestNormalize_LegacyChatHistoryLifted(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"chatHistory": [
			{"role": "user", "content": "first"},
			{"role": "assistant", "content": "second"}
		]
	}`))

	require.Len(t, p.ChatThreads, 1)
	thread := p.ChatThreads[0]
	require.Equal(t, "Thread #1", thread.Title)
	require.Len(t, thread.Messages, 2)
	require.Equal(t, "first", thread.Messages[0].Content)
	require.Equal(t, "second", thread.Messages[1].Content)

	// The flat form must not survive serialization.
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NotContains(t, string(data), "chatHistory")
}

func TestNormalize_LegacyHistoryIgnoredWhenThreadsExist(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"chatThreads": [{"id": "th-1", "title": "Main", "messages": []}],
		"chatHistory": [{"role": "user", "content": "stale"}]
	}`))

	require.Len(t, p.ChatThreads, 1)
	require.Equal(t, "th-1", p.ChatThreads[0].ID)
	require.Empty(t, p.ChatThreads[0].Messages)
}

func TestNormalize_SettingsSecretsStripped(t *testing.T) {
	n := testNormalizer()
	p := n.Normalize(mustRaw(t, `{
		"settings": {
			"provider": "openai",
			"model": "gpt-4o-mini",
			"apiKey": "sk-secret",
			"llm_api_key": "sk-other",
			"temperature": 0.5
		}
	}`))

	require.Equal(t, map[string]string{
		"provider": "openai",
		"model":    "gpt-4o-mini",
	}, p.Settings)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"title": null, "lemmas": [{"title": "Lemma 1"}]}`,
		`{"chatHistory": [{"role": "user", "content": "hi"}]}`,
		`{"chatThreads": [{"messages": [{"content": "x"}]}], "settings": {"apiKey": "s", "provider": "p"}}`,
		`{"facts": [{"id": "f1", "statementTex": "1+1=2", "refs": ["r"]}], "attempts": [{"lemmaId": "l"}]}`,
	}

	for _, src := range inputs {
		n := testNormalizer()
		first := n.Normalize(mustRaw(t, src))

		data, err := json.Marshal(first)
		require.NoError(t, err)
		raw, err := ParseRaw(data)
		require.NoError(t, err)
		second := n.Normalize(raw)

		require.Equal(t, first, second, "normalize not idempotent for %s", src)
	}
}

func TestNormalize_RoundTripPreservesShape(t *testing.T) {
	n := testNormalizer()
	first := n.Normalize(mustRaw(t, `{
		"title": "Primes",
		"lemmas": [{"id": "l1", "statementTex": "p > 1", "dependsOn": ["f1"]}],
		"chatThreads": [{"id": "t1", "title": "Main", "messages": [{"id": "m1", "role": "user", "content": "q"}]}]
	}`))

	data, err := json.Marshal(first)
	require.NoError(t, err)

	raw, err := ParseRaw(data)
	require.NoError(t, err)
	require.Equal(t, first, n.Normalize(raw))
}

func TestNormalizeProject_RoundTripsTypedPayload(t *testing.T) {
	n := testNormalizer()
	p := New("proj-1", "Primes", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	p.Lemmas = append(p.Lemmas, Lemma{Title: "Lemma 1", StatementTex: "x"})
	p.Settings = map[string]string{"provider": "openai", "openaiApiKey": "sk-leak"}

	got, err := n.NormalizeProject(p)
	require.NoError(t, err)
	require.Equal(t, "proj-1", got.ID)
	require.Equal(t, "", got.Lemmas[0].Title)
	require.NotEmpty(t, got.Lemmas[0].ID)
	require.Equal(t, map[string]string{"provider": "openai"}, got.Settings)
}
