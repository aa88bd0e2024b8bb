package gacha

import (
	"MenuGacha/models"
	"fmt"
	"sort"
)

// Catalog holds the de-duplicated menu and the ordered list of categories
// derived from it. It is read-only once built.
type Catalog struct {
	items      []models.MenuItem
	categories []string
	byName     map[string]int
}

// NewCatalog validates and de-duplicates records. When several records share
// a name the last one wins, but it keeps the position where the name first
// appeared. Categories follow categoryOrder filtered to the ones present, or
// are sorted alphabetically when categoryOrder is empty.
func NewCatalog(records []models.MenuItem, categoryOrder []string) (*Catalog, error) {
	byName := make(map[string]int, len(records))
	items := make([]models.MenuItem, 0, len(records))

	for i, record := range records {
		if err := validateRecord(record); err != nil {
			return nil, NewDataLoadError("records", fmt.Errorf("record %d: %w", i, err))
		}
		if idx, exists := byName[record.Name]; exists {
			items[idx] = record
			continue
		}
		byName[record.Name] = len(items)
		items = append(items, record)
	}

	return &Catalog{
		items:      items,
		categories: orderCategories(items, categoryOrder),
		byName:     byName,
	}, nil
}

func validateRecord(record models.MenuItem) error {
	switch {
	case record.Name == "":
		return fmt.Errorf("missing name")
	case record.Category == "":
		return fmt.Errorf("missing category for %q", record.Name)
	case record.Price < 0:
		return fmt.Errorf("negative price %d for %q", record.Price, record.Name)
	}
	return nil
}

func orderCategories(items []models.MenuItem, categoryOrder []string) []string {
	present := make(map[string]bool)
	for _, item := range items {
		present[item.Category] = true
	}

	categories := make([]string, 0, len(present))
	if len(categoryOrder) > 0 {
		for _, category := range categoryOrder {
			if present[category] {
				categories = append(categories, category)
				// Guard against a repeated entry in the configured order
				present[category] = false
			}
		}
		return categories
	}

	for category := range present {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Items returns a copy of the catalog entries in load order
func (c *Catalog) Items() []models.MenuItem {
	items := make([]models.MenuItem, len(c.items))
	copy(items, c.items)
	return items
}

// Categories returns a copy of the enumerable categories in display order
func (c *Catalog) Categories() []string {
	categories := make([]string, len(c.categories))
	copy(categories, c.categories)
	return categories
}

// HasCategory reports whether category is one of the enumerable categories
func (c *Catalog) HasCategory(category string) bool {
	for _, known := range c.categories {
		if known == category {
			return true
		}
	}
	return false
}

// Lookup returns the item with the given name
func (c *Catalog) Lookup(name string) (models.MenuItem, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[idx], true
}

// Len is the number of distinct items
func (c *Catalog) Len() int {
	return len(c.items)
}

// MinPrice returns the lowest price of the items in the active categories.
// ok is false when no item matches.
func (c *Catalog) MinPrice(active CategorySet) (price int, ok bool) {
	for _, item := range c.items {
		if !active.Contains(item.Category) {
			continue
		}
		if !ok || item.Price < price {
			price, ok = item.Price, true
		}
	}
	return price, ok
}

// Filter keeps the items whose category is in active, in catalog order.
// An empty active set filters everything out.
func Filter(items []models.MenuItem, active CategorySet) []models.MenuItem {
	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if active.Contains(item.Category) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
