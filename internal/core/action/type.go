package action

// Type identifies the kind of action sent to a dispatcher. The string value
// is the "type" tag used on the wire.
type Type string

const (
	TypeUpdateQuery      Type = "UpdateQuery"
	TypeToggleFileFinder Type = "ToggleFileFinder"
)

// IsValid reports whether t names a known action.
func (t Type) IsValid() bool {
	switch t {
	case TypeUpdateQuery, TypeToggleFileFinder:
		return true
	default:
		return false
	}
}

func (t Type) String() string { return string(t) }
