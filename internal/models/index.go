package models

// DefaultValueIndex maps an owning type to its registered per-property
// default expressions. One index exists per processing round: created empty
// at round start, fully populated by the collector before any classification
// happens, discarded at round end. It is never shared between rounds and is
// carried in the round context rather than any package-level state.
type DefaultValueIndex struct {
	entries map[string]map[string]string
}

// NewDefaultValueIndex creates an empty index
func NewDefaultValueIndex() *DefaultValueIndex {
	return &DefaultValueIndex{
		entries: make(map[string]map[string]string),
	}
}

// OwnerKey builds the index key for an owning type
func OwnerKey(packagePath, simpleName string) string {
	return packagePath + ":" + simpleName
}

// Register records a default expression for (owner, property). When the pair
// was already registered the later value wins and Register reports the
// replacement so the caller can diagnose the collision.
func (i *DefaultValueIndex) Register(ownerKey, property, expr string) (replaced bool) {
	props, ok := i.entries[ownerKey]
	if !ok {
		props = make(map[string]string)
		i.entries[ownerKey] = props
	}
	_, replaced = props[property]
	props[property] = expr
	return replaced
}

// Lookup returns the registered default expression for (owner, property)
func (i *DefaultValueIndex) Lookup(ownerKey, property string) (string, bool) {
	props, ok := i.entries[ownerKey]
	if !ok {
		return "", false
	}
	expr, ok := props[property]
	return expr, ok
}

// Count returns the total number of registered defaults
func (i *DefaultValueIndex) Count() int {
	total := 0
	for _, props := range i.entries {
		total += len(props)
	}
	return total
}
