package usecase

import "strings"

// Provider output for key points, concepts and action items arrives as
// loosely formatted bullet or numbered lists. The grammar is deliberately
// small: a line is a list item iff its first non-space character is a digit,
// '-', '•' or '*'.

func isListItem(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	return r == '-' || r == '•' || r == '*' || (r >= '0' && r <= '9')
}

// cleanListItem strips the marker ("1.", "3)", "-", "•") and the punctuation
// that follows it. Returns "" when nothing but the marker was present.
func cleanListItem(line string) string {
	s := strings.TrimSpace(line)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 {
		s = s[i:]
	} else {
		s = strings.TrimLeft(s, "-•*")
	}
	s = strings.TrimLeft(s, ".)-•* \t")
	return strings.TrimSpace(s)
}

// parseListItems keeps up to max cleaned list items from text, in order.
func parseListItems(text string, max int) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if !isListItem(line) {
			continue
		}
		item := cleanListItem(line)
		if item == "" {
			continue
		}
		items = append(items, item)
		if max > 0 && len(items) >= max {
			break
		}
	}
	return items
}

// parseSections groups list items under the most recently seen section
// header. Headers are matched case-insensitively by substring; lines before
// any recognized header are discarded. The result maps each header to its
// items, with headers that never appeared left out.
func parseSections(text string, headers []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if header, ok := matchHeader(trimmed, headers); ok {
			current = header
			continue
		}
		if current == "" || !isListItem(trimmed) {
			continue
		}
		if item := cleanListItem(trimmed); item != "" {
			sections[current] = append(sections[current], item)
		}
	}
	return sections
}

func matchHeader(line string, headers []string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, header := range headers {
		if strings.Contains(upper, strings.ToUpper(header)) {
			return header, true
		}
	}
	return "", false
}
