package model

// Catalog holds the venue's furniture entries. Catalog order matters: the
// placement engine tries entries first to last, so the order is the caller's
// priority ranking.
type Catalog struct {
	Entries []FurnitureSpec `json:"entries"`
}

// DefaultCatalog returns a catalog populated with common banquet furniture.
func DefaultCatalog() Catalog {
	banquet := NewFurnitureSpec("Banquet table 8p", 2200, 1000, 8, 38.00)
	banquet.Color = "#2196f3"
	trestle := NewFurnitureSpec("Trestle table 6p", 1800, 750, 6, 29.50)
	trestle.Color = "#4caf50"
	bistro := NewFurnitureSpec("Bistro table 4p", 1200, 800, 4, 21.00)
	bistro.Color = "#ff9800"
	cocktail := NewFurnitureSpec("Cocktail table", 700, 700, 0, 14.00)
	cocktail.Color = "#9c27b0"
	cocktail.Enabled = false

	return Catalog{Entries: []FurnitureSpec{banquet, trestle, bistro, cocktail}}
}

// Enabled returns the enabled entries in catalog order.
func (c Catalog) Enabled() []FurnitureSpec {
	var out []FurnitureSpec
	for _, e := range c.Entries {
		if e.Enabled {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry with the given ID, or false if absent.
func (c Catalog) Find(id string) (FurnitureSpec, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return FurnitureSpec{}, false
}

// Add appends an entry to the catalog.
func (c *Catalog) Add(spec FurnitureSpec) {
	c.Entries = append(c.Entries, spec)
}

// Remove deletes the entry with the given ID. It reports whether an entry
// was removed.
func (c *Catalog) Remove(id string) bool {
	for i, e := range c.Entries {
		if e.ID == id {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return true
		}
	}
	return false
}
