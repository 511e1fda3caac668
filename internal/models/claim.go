package models

// Claim is a typed statement about a user. Order and duplicates are
// significant: a user may carry the same type several times.
type Claim struct {
	Type      string
	Value     string
	ValueType string
}

// Matches reports whether c and other agree on type, value type and value.
func (c Claim) Matches(other Claim) bool {
	return c.Type == other.Type && c.ValueType == other.ValueType && c.Value == other.Value
}
