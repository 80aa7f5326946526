package config

import (
	"log"
	"sort"
	"strings"
)

// Missing returns the sorted names whose values are empty.
func Missing(vars map[string]string) []string {
	var out []string
	for name, v := range vars {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// MustSet exits the process when any of vars is empty, naming all of them at once.
func MustSet(vars map[string]string) {
	if missing := Missing(vars); len(missing) > 0 {
		log.Fatalf("missing required env %s", strings.Join(missing, ", "))
	}
}
