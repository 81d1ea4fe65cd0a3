package session

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Names may use any script, so the captures match Unicode letters, marks and digits.
var explicitNamePattern = regexp.MustCompile(`(?i)Hi, I am ([\p{L}\p{M}\p{N}_]+)|My name is ([\p{L}\p{M}\p{N}_]+)|Call me ([\p{L}\p{M}\p{N}_]+)`)

// ExtractName returns the name from an explicit statement such as
// "Hi, I am Jack", "My name is Jack" or "Call me Jack".
func ExtractName(query string) (string, bool) {
	m := explicitNamePattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", false
}

// NamePolicy decides what happens to the rest of a query that introduces a new name.
type NamePolicy string

const (
	// NamePolicyShortCircuit always answers with the acknowledgement only.
	NamePolicyShortCircuit NamePolicy = "short_circuit"
	// NamePolicyPrefix answers follow-up sentences and prefixes the acknowledgement.
	NamePolicyPrefix NamePolicy = "prefix"
)

func ParseNamePolicy(s string) (NamePolicy, error) {
	switch NamePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case NamePolicyShortCircuit:
		return NamePolicyShortCircuit, nil
	case NamePolicyPrefix, "":
		return NamePolicyPrefix, nil
	default:
		return "", fmt.Errorf("unknown name policy: %q", s)
	}
}

// Acknowledgement is the canned reply to a name statement.
func Acknowledgement(name string) string {
	return fmt.Sprintf("Hi! %s. Thank you for sharing your name. I will use this for future reference.", name)
}

// SplitSentences splits after '.', '?' or '!' when followed by whitespace.
func SplitSentences(query string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(query)
	for i := 0; i < len(runes)-1; i++ {
		if !isTerminator(runes[i]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		out = append(out, strings.TrimSpace(string(runes[start:i+1])))
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// HasFollowUp reports whether the query continues after its first sentence.
func HasFollowUp(query string) bool {
	return len(SplitSentences(query)) > 1
}

// StripGreeting removes a leading "Hi" or "Hi <name>" from a model reply so it can be
// joined to the acknowledgement without greeting twice.
func StripGreeting(reply, name string) string {
	re := regexp.MustCompile(`(?i)^hi\s+(` + regexp.QuoteMeta(name) + `[!,:]?\s+)?`)
	return strings.TrimSpace(re.ReplaceAllString(reply, ""))
}
