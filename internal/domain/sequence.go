package domain

import "fmt"

// sequenceBase keeps display ids four digits from the first allocation, the
// same offset the legacy id generator used.
const sequenceBase = 1000

// DisplayID formats the nth allocation of a sequence scope as a
// human-readable id, e.g. ("VND", 1) -> "VND-1001". Display ids are a
// presentation field; entities are keyed by opaque UUIDs.
func DisplayID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%d", prefix, sequenceBase+n)
}
