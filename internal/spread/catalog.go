package spread

import "fmt"

// Catalog is the ordered set of spreads offered to the querent
type Catalog struct {
	defs   []Definition
	byName map[string]int
}

// NewCatalog returns a catalog holding the built-in spreads
func NewCatalog() *Catalog {
	c := &Catalog{byName: make(map[string]int)}
	for _, def := range builtins() {
		// built-ins are known good
		_ = c.Add(def)
	}
	return c
}

// Add appends a definition. Names must be unique.
func (c *Catalog) Add(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := c.byName[def.Name]; exists {
		return fmt.Errorf("%w: %s already defined", ErrInvalidDefinition, def.Name)
	}

	// callers keep no handle on the stored positions
	def.Positions = append([]Position(nil), def.Positions...)
	c.byName[def.Name] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

// Lookup finds a definition by name
func (c *Catalog) Lookup(name string) (Definition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Names returns spread names in selector order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, def := range c.defs {
		names[i] = def.Name
	}
	return names
}

// Definitions returns all definitions in selector order
func (c *Catalog) Definitions() []Definition {
	return append([]Definition(nil), c.defs...)
}
