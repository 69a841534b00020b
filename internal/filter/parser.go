package filter

import (
	"fmt"
	"strings"
)

// ParseCrew turns crew arguments into a crew list, one name per argument. Commas
// are part of the name ("Harvard University, USA"). Arguments are trimmed, blank
// ones are dropped and duplicates (ignoring case) keep their first spelling.
func ParseCrew(args []string) []string {
	seen := make(map[string]bool)
	crew := make([]string, 0, len(args))

	for _, arg := range args {
		name := strings.TrimSpace(arg)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		crew = append(crew, name)
	}

	return crew
}

// ParseBoat validates a boat class argument against the known classes. An empty
// argument means no boat filter. The returned value uses the known spelling.
func ParseBoat(input string, known []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	for _, boat := range known {
		if strings.EqualFold(boat, input) {
			return boat, nil
		}
	}

	return "", fmt.Errorf("unknown boat class %q (known: %s)", input, strings.Join(known, ", "))
}
