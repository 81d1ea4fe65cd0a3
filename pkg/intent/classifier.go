package intent

import (
	"fmt"
	"strings"
)

// Category is the routing label that selects a persona agent.
type Category string

const (
	CategoryLocation      Category = "location"
	CategoryNavigation    Category = "navigation"
	CategoryCybersecurity Category = "cybersecurity"
	CategorySystem        Category = "system"
	CategoryOther         Category = "other"
)

// Categories lists every category in routing priority order, with the fallback last.
var Categories = []Category{
	CategoryLocation,
	CategoryCybersecurity,
	CategorySystem,
	CategoryNavigation,
	CategoryOther,
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a category name back to its Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == strings.ToLower(strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown intent category: %q", name)
}

// Rule pairs a category with the predicate that selects it.
type Rule struct {
	Category Category
	Match    func(lowered string) bool
}

// Keyword tables. Matching is plain substring containment on the lower-cased query,
// so "ids" also matches "kids" and "go" matches "good".
var (
	locationKeywords = []string{"room", "location", "where", "place", "area", "task"}

	cybersecurityKeywords = []string{
		"security", "cyber", "attack", "threat", "protection", "ddos", "dns",
		"firewall", "encryption", "malware", "phishing", "ransomware",
		"vulnerability", "penetration", "breach", "authentication", "intrusion",
		"zero-day", "exploit", "mitigation", "defense", "incident", "forensics",
		"safety", "network security", "data breach", "password", "access control",
		"ids", "ips", "iot security", "cloud security", "endpoint security",
		"web security", "mobile security",
	}

	systemKeywords = []string{
		"controller", "system", "asset", "configuration", "architecture",
		"setup", "installation", "framework", "protocol", "integration",
		"hardware", "software", "deployment", "infrastructure", "operating system",
		"network", "server", "database", "automation", "monitoring",
		"maintenance", "device", "tool", "resource management", "scalability",
	}

	navigationKeywords = []string{
		"move", "go", "navigate", "walk", "forward", "backward", "strafe",
		"left", "right", "joystick", "speed", "pace", "rotate", "turn",
		"perspective", "direction", "adjust", "push", "pressure", "click",
		"button", "trigger", "grip", "a button", "b button",
		"interact", "grab", "hold", "drop", "summon", "robi",
		"object", "icon", "box", "select", "outline", "highlight",
		"hover", "conversation", "appear", "materialize", "hear",
		"respond", "audio input", "release", "troubleshoot",
	}
)

// rules is evaluated in order; the first match wins.
var rules = []Rule{
	{Category: CategoryLocation, Match: containsAny(locationKeywords)},
	{Category: CategoryCybersecurity, Match: containsAny(cybersecurityKeywords)},
	{Category: CategorySystem, Match: containsAny(systemKeywords)},
	{Category: CategoryNavigation, Match: containsAny(navigationKeywords)},
}

func containsAny(keywords []string) func(string) bool {
	return func(lowered string) bool {
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return true
			}
		}
		return false
	}
}

// Rules returns a copy of the ordered routing table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Keywords returns the keyword table for a category, nil for CategoryOther.
func Keywords(c Category) []string {
	var src []string
	switch c {
	case CategoryLocation:
		src = locationKeywords
	case CategoryCybersecurity:
		src = cybersecurityKeywords
	case CategorySystem:
		src = systemKeywords
	case CategoryNavigation:
		src = navigationKeywords
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Classify returns the category of the first rule matching the query, or CategoryOther.
func Classify(query string) Category {
	lowered := strings.ToLower(query)
	for _, r := range rules {
		if r.Match(lowered) {
			return r.Category
		}
	}
	return CategoryOther
}
