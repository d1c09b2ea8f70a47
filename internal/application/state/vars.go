package state

import (
	"fmt"
	"sort"
)

// Vars is a variable table that yields a default value for unset names.
// Values come from decoded script or save data: bool, numbers, strings, nil.
type Vars struct {
	values map[string]any
	def    any
}

// NewVars creates a table whose missing names read as def
func NewVars(def any) *Vars {
	return &Vars{values: make(map[string]any), def: def}
}

// Get returns the value for name, or the default if it was never set
func (v *Vars) Get(name string) any {
	if val, ok := v.values[name]; ok {
		return val
	}
	return v.def
}

// Has reports whether name was explicitly set
func (v *Vars) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Truthy reports whether the value for name counts as true
func (v *Vars) Truthy(name string) bool {
	return Truthy(v.Get(name))
}

// Set assigns a single variable
func (v *Vars) Set(name string, val any) {
	v.values[name] = val
}

// Update assigns every entry of m
func (v *Vars) Update(m map[string]any) {
	for k, val := range m {
		v.values[k] = val
	}
}

// Len returns the number of explicitly set names
func (v *Vars) Len() int {
	return len(v.values)
}

// Names returns the set names in sorted order
func (v *Vars) Names() []string {
	out := make([]string, 0, len(v.values))
	for k := range v.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a copy of the explicitly set values
func (v *Vars) Snapshot() map[string]any {
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// String formats the table for logs
func (v *Vars) String() string {
	s := "{"
	for i, k := range v.Names() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%v", k, v.values[k])
	}
	return s + "}"
}

// Truthy applies the usual scripting rules: nil, false, zero numbers and
// empty strings or collections are false, everything else is true.
func Truthy(val any) bool {
	switch x := val.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// Store holds the game-wide variables shared by every scene
type Store struct {
	Globals *Vars
}

// NewStore creates a store with unset globals reading as false
func NewStore() *Store {
	return &Store{Globals: NewVars(false)}
}
