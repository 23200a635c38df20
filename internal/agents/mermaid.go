package agents

import (
	"fmt"
	"regexp"
	"strings"
)

// GrammarError reports the first diagram line outside the accepted grammar.
type GrammarError struct {
	Kind string
	Line int
	Text string
	Msg  string
}

func (e *GrammarError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s line %d: %s: %q", e.Kind, e.Line, e.Msg, e.Text)
}

const (
	mermaidID    = `[A-Za-z_][A-Za-z0-9_-]*`
	mermaidLabel = `[^()\[\]{}"|]*`
)

var (
	flowchartHeader = regexp.MustCompile(`^(?:graph|flowchart)\s+(?:TD|TB|BT|LR|RL)$`)

	// A node label is either bare text or a double-quoted string, which may
	// hold brackets and parentheses.
	flowchartLabel = `(?:"[^"]*"|` + mermaidLabel + `)`
	flowchartNode  = `(?:` + mermaidID + `(?:\(\(` + flowchartLabel + `\)\)|\[` + flowchartLabel + `\]|\(` + flowchartLabel + `\)|\{` + flowchartLabel + `\})?)`
	// A & B fans a link out to several nodes.
	flowchartNodes = flowchartNode + `(?:\s*&\s*` + flowchartNode + `)*`
	flowchartLink  = `(?:<-->|-->|---|==>|-\.->|-\.-|--o|--x|(?:--|==)\s+[^|"\-=<>]+?\s+(?:-->|==>))`
	flowchartEdge  = flowchartLink + `\s*(?:\|(?:"[^"]*"|[^|"]*)\|)?`

	flowchartStatements = []*regexp.Regexp{
		regexp.MustCompile(`^` + flowchartNodes + `(?:\s*` + flowchartEdge + `\s*` + flowchartNodes + `)*$`),
		regexp.MustCompile(`^subgraph\s+` + mermaidID + `(?:\s*\[` + mermaidLabel + `\])?(?:\s+` + mermaidLabel + `)?$`),
		regexp.MustCompile(`^end$`),
		regexp.MustCompile(`^(?:classDef|class|style|linkStyle)\s+\S.*$`),
	}

	erEntity       = `[A-Za-z_][A-Za-z0-9_-]*`
	erRelationship = regexp.MustCompile(`^` + erEntity + `\s+(?:\|o|\|\||\}o|\}\|)(?:--|\.\.)(?:o\||\|\||o\{|\|\{)\s+` + erEntity + `\s*:\s*(?:"[^"]*"|[A-Za-z0-9_-]+)$`)
	erBlockOpen    = regexp.MustCompile(`^` + erEntity + `\s*\{$`)
	erEmptyBlock   = regexp.MustCompile(`^` + erEntity + `\s*\{\s*\}$`)
	erAttribute    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\[\]()-]*\s+\*?[A-Za-z_][A-Za-z0-9_-]*(?:\s+(?:PK|FK|UK)(?:\s*,\s*(?:PK|FK|UK))*)?(?:\s+"[^"]*")?$`)
)

// diagramLines returns the meaningful lines of src with their 1-based line
// numbers. Blank lines and %% comments are skipped.
func diagramLines(src string) ([]string, []int) {
	var lines []string
	var numbers []int
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimSuffix(line, ";"))
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		lines = append(lines, line)
		numbers = append(numbers, i+1)
	}
	return lines, numbers
}

// CheckFlowchart accepts a Mermaid flowchart built only from node
// declarations, links, subgraphs and styling statements. It does not edit
// the source: anything outside that grammar is rejected.
func CheckFlowchart(src string) error {
	const kind = "flowchart"
	lines, numbers := diagramLines(src)
	if len(lines) == 0 {
		return &GrammarError{Kind: kind, Msg: "empty diagram"}
	}
	if !flowchartHeader.MatchString(lines[0]) {
		return &GrammarError{Kind: kind, Line: numbers[0], Text: lines[0], Msg: "expected graph or flowchart header with a direction"}
	}
	if len(lines) == 1 {
		return &GrammarError{Kind: kind, Msg: "no statements"}
	}

	depth := 0
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		matched := false
		for _, re := range flowchartStatements {
			if re.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			return &GrammarError{Kind: kind, Line: numbers[i], Text: line, Msg: "unrecognized statement"}
		}
		switch {
		case strings.HasPrefix(line, "subgraph "):
			depth++
		case line == "end":
			if depth == 0 {
				return &GrammarError{Kind: kind, Line: numbers[i], Text: line, Msg: "end without subgraph"}
			}
			depth--
		}
	}
	if depth != 0 {
		return &GrammarError{Kind: kind, Msg: "unclosed subgraph"}
	}
	return nil
}

// CheckERDiagram accepts a Mermaid erDiagram made of relationships and
// entity attribute blocks.
func CheckERDiagram(src string) error {
	const kind = "erDiagram"
	lines, numbers := diagramLines(src)
	if len(lines) == 0 {
		return &GrammarError{Kind: kind, Msg: "empty diagram"}
	}
	if lines[0] != "erDiagram" {
		return &GrammarError{Kind: kind, Line: numbers[0], Text: lines[0], Msg: "expected erDiagram header"}
	}
	if len(lines) == 1 {
		return &GrammarError{Kind: kind, Msg: "no statements"}
	}

	inBlock := false
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		switch {
		case inBlock && line == "}":
			inBlock = false
		case inBlock && erAttribute.MatchString(line):
		case inBlock:
			return &GrammarError{Kind: kind, Line: numbers[i], Text: line, Msg: "invalid attribute"}
		case erBlockOpen.MatchString(line):
			inBlock = true
		case erEmptyBlock.MatchString(line), erRelationship.MatchString(line):
		default:
			return &GrammarError{Kind: kind, Line: numbers[i], Text: line, Msg: "unrecognized statement"}
		}
	}
	if inBlock {
		return &GrammarError{Kind: kind, Msg: "unclosed entity block"}
	}
	return nil
}
