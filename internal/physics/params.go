package physics

import (
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
)

// ParameterSet holds the coefficients of one system in fixed positional slots.
// The zero value is an empty Lorenz set; use Defaults to obtain a usable one.
// ParameterSet is a value type: assignment copies every coefficient.
type ParameterSet struct {
	kind   dynamo.SystemKind
	n      int
	values [MaxSlots]float64
}

// Defaults returns kind's compiled-in coefficients.
func Defaults(kind dynamo.SystemKind) ParameterSet {
	p := ParameterSet{kind: kind}
	if !kind.Valid() {
		return p
	}
	coefs := descriptors[kind].Coefficients
	p.n = len(coefs)
	for i, c := range coefs {
		p.values[i] = c.Default
	}
	return p
}

func (p ParameterSet) Kind() dynamo.SystemKind { return p.kind }
func (p ParameterSet) Len() int                { return p.n }

// Reset restores the compiled-in defaults for p's system.
func (p *ParameterSet) Reset() {
	*p = Defaults(p.kind)
}

func (p ParameterSet) index(name string) (int, error) {
	if p.kind.Valid() {
		for i, c := range descriptors[p.kind].Coefficients {
			if c.Name == name && i < p.n {
				return i, nil
			}
		}
	}
	return -1, &dynamo.ParameterError{System: p.kind, Name: name, Wrapped: dynamo.ErrInvalidParameter}
}

// Get returns the named coefficient.
func (p ParameterSet) Get(name string) (float64, error) {
	i, err := p.index(name)
	if err != nil {
		return 0, err
	}
	return p.values[i], nil
}

// Set assigns the named coefficient.
func (p *ParameterSet) Set(name string, v float64) error {
	i, err := p.index(name)
	if err != nil {
		return err
	}
	p.values[i] = v
	return nil
}

// Adjust adds delta to the named coefficient and returns the new value.
func (p *ParameterSet) Adjust(name string, delta float64) (float64, error) {
	i, err := p.index(name)
	if err != nil {
		return 0, err
	}
	p.values[i] += delta
	return p.values[i], nil
}

// Slot returns the coefficient at position i.
func (p ParameterSet) Slot(i int) (float64, bool) {
	if i < 0 || i >= p.n {
		return 0, false
	}
	return p.values[i], true
}

// AdjustSlot adds delta to the coefficient at position i. Out of range
// positions leave p unchanged and report false.
func (p *ParameterSet) AdjustSlot(i int, delta float64) (float64, bool) {
	if i < 0 || i >= p.n {
		return 0, false
	}
	p.values[i] += delta
	return p.values[i], true
}

// Names returns the coefficient names in slot order.
func (p ParameterSet) Names() []string {
	names := make([]string, p.n)
	for i := range names {
		names[i] = descriptors[p.kind].Coefficients[i].Name
	}
	return names
}

// Values returns the coefficients in slot order.
func (p ParameterSet) Values() []float64 {
	return append([]float64(nil), p.values[:p.n]...)
}

// Map returns the coefficients keyed by name.
func (p ParameterSet) Map() map[string]float64 {
	m := make(map[string]float64, p.n)
	for i, name := range p.Names() {
		m[name] = p.values[i]
	}
	return m
}

// Apply sets every coefficient in m. An unknown name leaves p unchanged.
func (p *ParameterSet) Apply(m map[string]float64) error {
	next := *p
	for name, v := range m {
		if err := next.Set(name, v); err != nil {
			return err
		}
	}
	*p = next
	return nil
}

func (p ParameterSet) String() string {
	s := p.kind.String() + "{"
	for i, name := range p.Names() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%.4g", name, p.values[i])
	}
	return s + "}"
}
