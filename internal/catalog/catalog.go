package catalog

// Catalog is an immutable, keyed collection of scenario definitions.
// Built once, then shared read-only across sessions; no locking needed.
type Catalog struct {
	scenarios []*ScenarioDefinition
	byID      map[string]*ScenarioDefinition
}

// New builds a catalog from defs. Synthetic entries the engine depends on
// (lottery result, saving contribution, deferred payment, generic late fee)
// are appended from the built-in catalog when defs omits them.
func New(defs []*ScenarioDefinition) (*Catalog, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(defs))
	for _, d := range defs {
		have[d.ID] = true
	}
	needed := []string{IDLotteryResult, IDSavingContribution, IDDeferredPayment, IDLateFeeGeneric}
	missing := false
	for _, id := range needed {
		if !have[id] {
			missing = true
			break
		}
	}
	if missing {
		base := builtinByID()
		for _, id := range needed {
			if !have[id] {
				defs = append(defs, base[id])
				have[id] = true
			}
		}
	}

	c := &Catalog{
		scenarios: defs,
		byID:      make(map[string]*ScenarioDefinition, len(defs)),
	}
	for _, d := range defs {
		c.byID[d.ID] = d
	}
	return c, nil
}

// ByID looks up a scenario definition by its id.
func (c *Catalog) ByID(id string) (*ScenarioDefinition, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns the scenario definitions in catalog order. Callers must treat
// the returned slice and its entries as read-only.
func (c *Catalog) All() []*ScenarioDefinition {
	return c.scenarios
}

// Len reports the number of scenarios in the catalog.
func (c *Catalog) Len() int { return len(c.scenarios) }

func builtinByID() map[string]*ScenarioDefinition {
	base := BuildDefault()
	m := make(map[string]*ScenarioDefinition, len(base))
	for _, d := range base {
		m[d.ID] = d
	}
	return m
}
