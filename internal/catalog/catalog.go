package catalog

import (
	"strings"
	"sync"

	"CryptoViewer/internal/model"
)

// Catalog holds the full currency set and the subset matching the current
// search text. Both are replaced under one lock so a reader never sees a
// filtered set computed against a different full set.
type Catalog struct {
	mu         sync.Mutex
	all        []*model.Currency
	filtered   []*model.Currency
	searchText string
	selected   *model.Currency
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{}
}

// Load replaces the full set with currencies, in order, and recomputes the filtered set.
func (c *Catalog) Load(currencies []*model.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = make([]*model.Currency, 0, len(currencies))
	for _, cur := range currencies {
		if cur != nil {
			c.all = append(c.all, cur)
		}
	}
	c.recomputeLocked()
}

// SetSearchText updates the search text and recomputes the filtered set.
func (c *Catalog) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchText = text
	c.recomputeLocked()
}

// RecomputeFiltered rebuilds the filtered set from the current full set and search text.
func (c *Catalog) RecomputeFiltered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recomputeLocked()
}

// Select records the active selection. Any value is accepted; the return
// value reports whether it is a member of the current full set.
func (c *Catalog) Select(cur *model.Currency) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = cur
	if cur == nil {
		return false
	}
	return c.indexLocked(cur.ID) >= 0
}

// Selected returns the active selection, or nil.
func (c *Catalog) Selected() *model.Currency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SearchText returns the current search text.
func (c *Catalog) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchText
}

// All returns a copy of the full set in load order.
func (c *Catalog) All() []*model.Currency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.Currency(nil), c.all...)
}

// Filtered returns a copy of the filtered set.
func (c *Catalog) Filtered() []*model.Currency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.Currency(nil), c.filtered...)
}

// Lookup returns the member of the full set with the given id.
func (c *Catalog) Lookup(id string) (*model.Currency, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexLocked(id); i >= 0 {
		return c.all[i], true
	}
	return nil, false
}

// AttachHistory stores loaded price history on the member with the given id.
// It reports false when no such member exists.
func (c *Catalog) AttachHistory(id string, samples []model.PriceHistorySample) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		return false
	}
	c.all[i].PriceHistory = samples
	return true
}

func (c *Catalog) indexLocked(id string) int {
	for i, cur := range c.all {
		if cur.ID == id {
			return i
		}
	}
	return -1
}

// recomputeLocked clears and rebuilds the filtered set. Caller holds c.mu.
func (c *Catalog) recomputeLocked() {
	c.filtered = Filter(c.all, c.searchText)
}

// Filter returns the members of all whose name or symbol contains text,
// case-insensitively, in their original order. Blank text matches everything.
func Filter(all []*model.Currency, text string) []*model.Currency {
	out := make([]*model.Currency, 0, len(all))
	if strings.TrimSpace(text) == "" {
		return append(out, all...)
	}
	needle := strings.ToLower(text)
	for _, cur := range all {
		if Matches(cur, needle) {
			out = append(out, cur)
		}
	}
	return out
}

// Matches reports whether cur's name or symbol contains the lower-cased needle.
func Matches(cur *model.Currency, needle string) bool {
	return strings.Contains(strings.ToLower(cur.Name), needle) ||
		strings.Contains(strings.ToLower(cur.Symbol), needle)
}
