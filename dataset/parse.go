package dataset

import (
	"strconv"
	"strings"
)

// ParseList interprets a CSV cell holding a stringified list literal such as
// `['00123', '00456']`. Elements may be quoted strings or numbers. Parsing is
// all or nothing: any invalid element makes the whole cell an empty list. A
// bare scalar cell parses as a one-element list.
func ParseList(cell string) []string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return parseElements(s[1 : len(s)-1])
	}
	if v, ok := parseScalar(s); ok {
		return []string{v}
	}
	return nil
}

// ParseQuantities parses a list cell of numbers. Elements that do not parse
// as numbers become 0 and get dropped later by the presence invariant;
// fractional quantities are truncated.
func ParseQuantities(cell string) []int {
	raw := ParseList(cell)
	if raw == nil {
		return nil
	}
	qtys := make([]int, len(raw))
	for i, r := range raw {
		f, err := strconv.ParseFloat(r, 64)
		if err != nil {
			continue
		}
		qtys[i] = int(f)
	}
	return qtys
}

func parseElements(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return nil
	}
	var elems []string
	var cur strings.Builder
	var quote rune
	for _, r := range inner {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == ',':
			elems = append(elems, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil
	}
	elems = append(elems, cur.String())

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		v, ok := parseScalar(strings.TrimSpace(e))
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// parseScalar unquotes a quoted element or accepts a numeric literal.
// Word-like tokens (including nan/inf) are rejected the way a literal parser
// rejects unquoted names.
func parseScalar(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1], true
		}
	}
	if s == "" {
		return "", false
	}
	switch s[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s, true
		}
	}
	return "", false
}
