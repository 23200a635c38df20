package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Repairs for syntax mistakes models commonly make. They are heuristics:
// quotes escaped inside single-quoted values and deeply nested structures
// are not always recovered.
var (
	// "a"\n"b": -> "a",\n"b":
	commaBeforeKeyRegex = regexp.MustCompile(`(")\s*\n\s*("[\w][^"]*"\s*:)`)
	// 12\n"b": -> 12,\n"b":
	commaAfterLiteralRegex = regexp.MustCompile(`(\d|true|false|null)\s*\n\s*("[\w][^"]*"\s*:)`)
	// } "b" -> }, "b"
	commaAfterCloseRegex = regexp.MustCompile(`([}\]])\s*\n?\s*("[\w])`)
	// [1, 2,] -> [1, 2]
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
	// {'key': -> {"key":
	singleQuotedKeyRegex = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)
	// : 'value' -> : "value"
	singleQuotedValueRegex = regexp.MustCompile(`(:\s*)'((?:[^'\\]|\\.)*)'(\s*[,}\]])`)
	// : value} -> : "value"}
	bareWordValueRegex = regexp.MustCompile(`(:\s*)([a-zA-Z][a-zA-Z0-9_-]*)(\s*[,}\]])`)
)

// Repair applies the known fixes to s and returns the result.
// The output is not guaranteed to be valid JSON.
func Repair(s string) string {
	steps := []func(string) string{
		escapeControlChars,
		escapeInvalidBackslashes,
		func(s string) string { return commaBeforeKeyRegex.ReplaceAllString(s, `$1, $2`) },
		func(s string) string { return commaAfterLiteralRegex.ReplaceAllString(s, `$1, $2`) },
		func(s string) string { return commaAfterCloseRegex.ReplaceAllString(s, `$1, $2`) },
		func(s string) string { return trailingCommaRegex.ReplaceAllString(s, `$1`) },
		func(s string) string { return singleQuotedKeyRegex.ReplaceAllString(s, `$1"$2"$3`) },
		quoteSingleQuotedValues,
		quoteBareWords,
		closeTruncated,
	}
	for _, step := range steps {
		s = step(s)
	}
	return s
}

func quoteSingleQuotedValues(s string) string {
	return singleQuotedValueRegex.ReplaceAllStringFunc(s, func(match string) string {
		parts := singleQuotedValueRegex.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		value := strings.ReplaceAll(parts[2], `\'`, `'`)
		value = strings.ReplaceAll(value, `"`, `\"`)
		return parts[1] + `"` + value + `"` + parts[3]
	})
}

func quoteBareWords(s string) string {
	return bareWordValueRegex.ReplaceAllStringFunc(s, func(match string) string {
		parts := bareWordValueRegex.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		switch parts[2] {
		case "true", "false", "null":
			return match
		}
		return parts[1] + `"` + parts[2] + `"` + parts[3]
	})
}

// escapeControlChars escapes raw control characters that appear inside strings.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString && c < 0x20:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// escapeInvalidBackslashes doubles backslashes that do not start a valid
// JSON escape, e.g. a Windows path or a regex like \d.
func escapeInvalidBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = false
			b.WriteByte(c)
		case '\\':
			if i+1 < len(s) && strings.IndexByte(`"\/bfnrtu`, s[i+1]) >= 0 {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closeTruncated terminates an unfinished string and closes open
// containers in the order they were opened.
func closeTruncated(s string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !inString && len(stack) == 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		if escaped {
			b.WriteByte('\\')
		}
		b.WriteByte('"')
	}
	trimmed := strings.TrimRight(b.String(), " \t\r\n")
	b.Reset()
	b.WriteString(strings.TrimSuffix(trimmed, ","))
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}
