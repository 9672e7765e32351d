package keys

import "strings"

// SlotKey produces the canonical storage key for a slot inside a namespace.
// Behavior: trims both parts, lower-cases, replaces spaces with underscores
// and joins with a colon. An empty namespace becomes "default".
func SlotKey(namespace, slot string) string {
	ns := normalize(namespace)
	if ns == "" {
		ns = "default"
	}
	return ns + ":" + normalize(slot)
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
