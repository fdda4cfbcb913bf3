// Package axis enumerates the semantic roles an array axis can carry.
package axis

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is the semantic tag attached to one axis of a dataset.
type Role int

const (
	Unclassified Role = iota
	Spatial
	Reciprocal
	Spectral
	Temporal
)

var roleNames = map[Role]string{
	Unclassified: "UNKNOWN",
	Spatial:      "SPATIAL",
	Reciprocal:   "RECIPROCAL",
	Spectral:     "SPECTRAL",
	Temporal:     "TEMPORAL",
}

// All returns every role in declaration order.
func All() []Role {
	return []Role{Unclassified, Spatial, Reciprocal, Spectral, Temporal}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// IsImage reports whether an axis with this role can be one of the two
// displayed axes of an image.
func (r Role) IsImage() bool {
	return r == Spatial || r == Reciprocal
}

// ParseRole accepts the role name in any case. "unclassified" and "unknown"
// both map to Unclassified.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "UNCLASSIFIED" {
		return Unclassified, nil
	}
	for _, r := range All() {
		if roleNames[r] == name {
			return r, nil
		}
	}
	return Unclassified, fmt.Errorf("unknown axis role %q", s)
}

// MarshalYAML writes the role by name.
func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML reads a role by name.
func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
