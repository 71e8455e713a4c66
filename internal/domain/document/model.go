package document

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Project is the canonical shape of a proof project document.
// Instances produced by the Normalizer always have non-nil collections.
type Project struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Abstract    string            `json:"abstract"`
	Owner       string            `json:"owner"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Notation    []Notation        `json:"notation"`
	Definitions []Definition      `json:"definitions"`
	Facts       []Fact            `json:"facts"`
	Lemmas      []Lemma           `json:"lemmas"`
	Conjectures []Conjecture      `json:"conjectures"`
	Ideas       []Idea            `json:"ideas"`
	Pitfalls    []Pitfall         `json:"pitfalls"`
	Attempts    []Attempt         `json:"attempts"`
	Attachments []Attachment      `json:"attachments"`
	ChatThreads []ChatThread      `json:"chatThreads"`
	Settings    map[string]string `json:"settings,omitempty"`
}

// Notation is a single notation convention, rendered as one paragraph.
type Notation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Definition is a defined term with its LaTeX statement.
type Definition struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	StatementTex string   `json:"statementTex"`
	Tags         []string `json:"tags"`
}

// Fact is an established result, rendered as a numbered theorem block.
type Fact struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	StatementTex string   `json:"statementTex"`
	Refs         []string `json:"refs"`
}

// Lemma is a claim under proof. DependsOn lists ids of facts or lemmas
// the proof relies on.
type Lemma struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	StatementTex string   `json:"statementTex"`
	Proof        string   `json:"proof"`
	DependsOn    []string `json:"dependsOn"`
}

// Conjecture is an open claim with optional supporting evidence notes.
type Conjecture struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	StatementTex string `json:"statementTex"`
	Evidence     string `json:"evidence"`
}

// Idea is an informal direction worth exploring.
type Idea struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Pitfall records an approach known not to work and why.
type Pitfall struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Attempt records one proof attempt against a lemma.
type Attempt struct {
	ID        string    `json:"id"`
	LemmaID   string    `json:"lemmaId"`
	Approach  string    `json:"approach"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is an opaque named blob carried alongside the project.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// ChatThread is a named, ordered conversation attached to a project.
type ChatThread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is a single user or assistant turn in a thread.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Summary is a lightweight representation for listing projects.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New constructs a default document for a freshly created project.
// CreatedAt and UpdatedAt are stamped with the same instant.
func New(id, title string, now time.Time) *Project {
	now = now.UTC()
	return &Project{
		ID:          id,
		Title:       title,
		Abstract:    "",
		Owner:       "local",
		CreatedAt:   now,
		UpdatedAt:   now,
		Notation:    []Notation{},
		Definitions: []Definition{},
		Facts:       []Fact{},
		Lemmas:      []Lemma{},
		Conjectures: []Conjecture{},
		Ideas:       []Idea{},
		Pitfalls:    []Pitfall{},
		Attempts:    []Attempt{},
		Attachments: []Attachment{},
		ChatThreads: []ChatThread{},
	}
}
