package gacha

import (
	"MenuGacha/models"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Selector draws random budget-constrained combinations of menu items.
// It is not an optimizer: every step picks uniformly among the items that
// are still affordable and not yet used.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector builds a selector seeded with seed. A zero seed uses the clock.
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Select returns the drawn items, or nil when no active item fits the budget.
func (s *Selector) Select(budget int, items []models.MenuItem, active CategorySet) []models.MenuItem {
	available := make([]models.MenuItem, 0, len(items))
	for _, item := range Filter(items, active) {
		if item.Price <= budget {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := []models.MenuItem{}
	remaining := budget
	used := make(map[int]bool)

	for remaining > 0 {
		candidates := make([]models.MenuItem, 0, len(available))
		for _, item := range available {
			if item.Price <= remaining && !used[item.ID] {
				candidates = append(candidates, item)
			}
		}
		if len(candidates) == 0 {
			break
		}

		item := candidates[s.rng.Intn(len(candidates))]
		selected = append(selected, item)
		used[item.ID] = true
		remaining -= item.Price
	}

	return selected
}
