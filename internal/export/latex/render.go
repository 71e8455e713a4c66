// Package latex turns a normalized project document into a bundle of
// compilable LaTeX sources. Rendering is a pure function of the document:
// it never mutates its input, never touches storage, and produces
// byte-identical output for identical input.
package latex

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/rgould/proofdesk/internal/domain/document"
)

// Fragment file names referenced by the root document.
const (
	RootFile        = "main.tex"
	NotationFile    = "notation.tex"
	FactsFile       = "facts.tex"
	LemmasFile      = "lemmas.tex"
	ConjecturesFile = "conjectures.tex"
)

// Options tunes rendering. Preamble, when set, is appended verbatim to the
// fixed preamble of the root document.
type Options struct {
	Preamble string
}

var rootTemplate = template.Must(template.New("root").Parse(`\documentclass[11pt]{article}
\usepackage{amsmath}
\usepackage{amssymb}
\usepackage{amsthm}
\usepackage[margin=1in]{geometry}
\usepackage{hyperref}

\newtheorem{theorem}{Theorem}
\newtheorem{lemma}{Lemma}
{{- if .Preamble}}

{{.Preamble}}
{{- end}}

\title{ {{- .Title -}} }
\author{ {{- .Owner -}} }

\begin{document}
\maketitle
{{- if .Abstract}}

\begin{abstract}
{{.Abstract}}
\end{abstract}
{{- end}}

\section*{Notation}
\input{notation}

\section*{Facts}
\input{facts}

\section*{Lemmas}
\input{lemmas}

\section*{Conjectures}
\input{conjectures}

\end{document}
`))

type rootData struct {
	Title    string
	Owner    string
	Abstract string
	Preamble string
}

// Render maps a document to its named LaTeX fragments. Empty collections
// render a placeholder comment so every fragment is syntactically complete
// even for a brand-new project.
func Render(p *document.Project, opts Options) (map[string]string, error) {
	var root bytes.Buffer
	err := rootTemplate.Execute(&root, rootData{
		Title:    p.Title,
		Owner:    p.Owner,
		Abstract: p.Abstract,
		Preamble: strings.TrimSpace(opts.Preamble),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering root document: %w", err)
	}

	return map[string]string{
		RootFile:        root.String(),
		NotationFile:    renderNotation(p.Notation),
		FactsFile:       renderFacts(p.Facts),
		LemmasFile:      renderLemmas(p.Lemmas),
		ConjecturesFile: renderConjectures(p.Conjectures),
	}, nil
}

func renderNotation(entries []document.Notation) string {
	if len(entries) == 0 {
		return "% No notation entries yet.\n"
	}
	var b strings.Builder
	for i, entry := range entries {
		name := document.DisplayTitle(document.KindNotation, i, entry.Name)
		fmt.Fprintf(&b, "\\paragraph{%s} %s\n\n", name, entry.Description)
	}
	return b.String()
}

func renderFacts(facts []document.Fact) string {
	if len(facts) == 0 {
		return "% No facts yet.\n"
	}
	var b strings.Builder
	for i, fact := range facts {
		title := document.DisplayTitle(document.KindFact, i, fact.Title)
		fmt.Fprintf(&b, "\\begin{theorem}[%s]\\label{fact:%s}\n%s\n\\end{theorem}\n\n", title, fact.ID, fact.StatementTex)
	}
	return b.String()
}

func renderLemmas(lemmas []document.Lemma) string {
	if len(lemmas) == 0 {
		return "% No lemmas yet.\n"
	}
	var b strings.Builder
	for i, lemma := range lemmas {
		title := document.DisplayTitle(document.KindLemma, i, lemma.Title)
		fmt.Fprintf(&b, "\\begin{lemma}[%s]\\label{lemma:%s}\n%s\n\\end{lemma}\n", title, lemma.ID, lemma.StatementTex)
		if len(lemma.DependsOn) > 0 {
			fmt.Fprintf(&b, "\\noindent\\emph{Depends on:} %s.\n", strings.Join(lemma.DependsOn, ", "))
		}
		if strings.TrimSpace(lemma.Proof) != "" {
			fmt.Fprintf(&b, "\\begin{proof}\n%s\n\\end{proof}\n", lemma.Proof)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderConjectures(conjectures []document.Conjecture) string {
	if len(conjectures) == 0 {
		return "% No conjectures yet.\n"
	}
	var b strings.Builder
	for i, conjecture := range conjectures {
		title := document.DisplayTitle(document.KindConjecture, i, conjecture.Title)
		fmt.Fprintf(&b, "\\subsection*{%s}\n%s\n", title, conjecture.StatementTex)
		if strings.TrimSpace(conjecture.Evidence) != "" {
			fmt.Fprintf(&b, "\\paragraph{Evidence} %s\n", conjecture.Evidence)
		}
		b.WriteString("\n")
	}
	return b.String()
}
