package members

import (
	"fmt"
	"strings"
)

// DefaultMembers is the member list served when no other list is configured
var DefaultMembers = []string{"Member1", "Member2", "Member3"}

// Roster is an ordered, immutable list of member names
type Roster struct {
	names []string
}

// NewRoster copies names into a new roster. The list must be non-empty and may not contain blank names.
func NewRoster(names []string) (*Roster, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("member list cannot be empty")
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("member at index %d has empty name", i)
		}
	}

	copied := make([]string, len(names))
	copy(copied, names)
	return &Roster{names: copied}, nil
}

// List returns the members in their original order. The returned slice is owned by the caller.
func (r *Roster) List() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
