package domain

import "strings"

// RemappingRule rewrites an import literal prefix.
type RemappingRule struct {
	From string
	To   string
}

// Remappings is an ordered rule list; the first matching prefix wins.
type Remappings []RemappingRule

// Apply rewrites literal with the first rule whose From is a prefix of it.
// It reports whether any rule matched.
func (r Remappings) Apply(literal string) (string, bool) {
	for _, rule := range r {
		if strings.HasPrefix(literal, rule.From) {
			return rule.To + literal[len(rule.From):], true
		}
	}
	return literal, false
}

// ParseRemapping parses a single from=to rule.
func ParseRemapping(line string) (RemappingRule, error) {
	line = strings.TrimSpace(line)
	from, to, found := strings.Cut(line, "=")
	from = strings.TrimSpace(from)
	if !found || from == "" {
		return RemappingRule{}, Tagged(ErrRemappingParse, "line", line)
	}
	return RemappingRule{From: from, To: strings.TrimSpace(to)}, nil
}

// ParseRemappings parses one rule per line, skipping blank lines and # comments.
// Malformed lines are skipped and reported so that the caller can warn.
func ParseRemappings(text string) (Remappings, []error) {
	return ParseRemappingLines(strings.Split(text, "\n"))
}

// ParseRemappingLines parses an already split list of rules.
func ParseRemappingLines(lines []string) (Remappings, []error) {
	var (
		rules Remappings
		errs  []error
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rule, err := ParseRemapping(trimmed)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, errs
}
