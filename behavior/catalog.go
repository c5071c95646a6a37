package behavior

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/cellsoup/config"
)

// ErrUnknownBehavior is returned when a slot index has no catalog entry.
var ErrUnknownBehavior = errors.New("behavior: unknown catalog slot")

// Builder constructs a unit from a decoded bundle.
type Builder func(b Bundle) Unit

// Entry describes one catalog slot.
type Entry struct {
	Name  string
	Role  Role
	Build Builder
}

// Catalog is the fixed, ordered list of behavior constructors.
// Slot i of a decoded strand always builds with entry i, so the order is part
// of the genome encoding and must not change between runs.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// NewCatalog creates the catalog with every built-in behavior registered.
func NewCatalog(chemCfg config.ChemistryConfig, repro config.ReproductionConfig) *Catalog {
	c := &Catalog{byName: make(map[string]int)}
	c.register(Entry{Name: NameLocomotion, Role: RoleBoundary, Build: func(b Bundle) Unit { return NewLocomotion(b, chemCfg) }})
	c.register(Entry{Name: NameGlycolysis, Role: RoleInternal, Build: func(b Bundle) Unit { return NewGlycolysis(b, chemCfg) }})
	c.register(Entry{Name: NamePolymerSynthesis, Role: RoleInternal, Build: func(b Bundle) Unit { return NewPolymerSynthesis(b, chemCfg) }})
	c.register(Entry{Name: NameProteinSynthesis, Role: RoleInternal, Build: func(b Bundle) Unit { return NewProteinSynthesis(b) }})
	c.register(Entry{Name: NamePolymerBreakdown, Role: RoleInternal, Build: func(b Bundle) Unit { return NewPolymerBreakdown(b) }})
	c.register(Entry{Name: NameReproduction, Role: RoleInternal, Build: func(b Bundle) Unit { return NewReproduction(b, repro) }})
	return c
}

// NewCatalogFromConfig is a shorthand for NewCatalog with the relevant sections of cfg.
func NewCatalogFromConfig(cfg *config.Config) *Catalog {
	return NewCatalog(cfg.Chemistry, cfg.Reproduction)
}

func (c *Catalog) register(e Entry) {
	c.byName[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Len returns the number of slots.
func (c *Catalog) Len() int { return len(c.entries) }

// Entry returns the entry for slot i.
func (c *Catalog) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Index returns the slot of a named behavior.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.byName[name]
	return i, ok
}

// Names returns all behavior names in slot order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Build constructs the unit for slot i.
func (c *Catalog) Build(i int, b Bundle) (Unit, error) {
	e, ok := c.Entry(i)
	if !ok {
		return nil, fmt.Errorf("%w: %d of %d", ErrUnknownBehavior, i, len(c.entries))
	}
	return e.Build(b), nil
}
