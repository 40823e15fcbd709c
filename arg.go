package symbolic

import "sort"

// ============================================================
// Arg — interned argument cell
// ============================================================

// Arg is a named cell that can hold a numeric value. A Registry holds exactly
// one Arg per name, so symbols compare arguments by pointer.
type Arg struct {
	name     string
	value    float64
	bound    bool
	registry *Registry
}

func (a *Arg) Name() string        { return a.name }
func (a *Arg) SetValue(v float64)  { a.value, a.bound = v, true }
func (a *Arg) ClearValue()         { a.value, a.bound = 0, false }
func (a *Arg) IsBound() bool       { return a.bound }
func (a *Arg) Registry() *Registry { return a.registry }

// Value returns the bound value, if any.
func (a *Arg) Value() (float64, bool) { return a.value, a.bound }

// ============================================================
// Registry
// ============================================================

// Registry interns Arg cells by name. It is not safe for concurrent use.
type Registry struct {
	args map[string]*Arg
}

func NewRegistry() *Registry { return &Registry{args: make(map[string]*Arg)} }

// Default backs the package-level constructors such as S and SinOf.
var Default = NewRegistry()

// Get returns the Arg for name, creating it on first use.
func (r *Registry) Get(name string) *Arg {
	if a, ok := r.args[name]; ok {
		return a
	}
	a := &Arg{name: name, registry: r}
	r.args[name] = a
	return a
}

func (r *Registry) Lookup(name string) (*Arg, bool) {
	a, ok := r.args[name]
	return a, ok
}

func (r *Registry) SetValue(name string, v float64) { r.Get(name).SetValue(v) }

func (r *Registry) ClearValue(name string) {
	if a, ok := r.args[name]; ok {
		a.ClearValue()
	}
}

func (r *Registry) Value(name string) (float64, bool) {
	if a, ok := r.args[name]; ok {
		return a.Value()
	}
	return 0, false
}

// Names returns the interned names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.args))
	for name := range r.args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetArg interns name in the Default registry.
func GetArg(name string) *Arg { return Default.Get(name) }
