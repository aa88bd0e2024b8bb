package gacha

import (
	"MenuGacha/models"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Outcome tells the caller which message to show for a draw
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeBudgetTooLow  Outcome = "budget_too_low"
	OutcomeNoCombination Outcome = "no_combination"
)

// DrawResult is one gacha draw, it only lives for one response
type DrawResult struct {
	ID        string            `json:"id"`
	Outcome   Outcome           `json:"outcome"`
	Budget    int               `json:"budget"`
	Total     int               `json:"total"`
	Remaining int               `json:"remaining"`
	Items     []models.MenuItem `json:"items"`
	MinBudget int               `json:"min_budget"`
	// Lowest price among the active categories, absent when none match
	MinPrice *int `json:"min_price,omitempty"`
}

// Service runs draws against a catalog with a configurable minimum budget
type Service struct {
	selector  *Selector
	minBudget int
	maxBudget int
}

func NewService(selector *Selector, minBudget, maxBudget int) *Service {
	return &Service{
		selector:  selector,
		minBudget: minBudget,
		maxBudget: maxBudget,
	}
}

func (s *Service) MinBudget() int {
	return s.minBudget
}

func (s *Service) MaxBudget() int {
	return s.maxBudget
}

// Draw checks the budget against the configured threshold, then runs the
// selector over the catalog filtered by active.
func (s *Service) Draw(catalog *Catalog, budget int, active CategorySet) DrawResult {
	result := DrawResult{
		ID:        uuid.NewString(),
		Budget:    budget,
		Remaining: budget,
		Items:     []models.MenuItem{},
		MinBudget: s.minBudget,
	}
	if minPrice, ok := catalog.MinPrice(active); ok {
		result.MinPrice = &minPrice
	}

	if budget < s.minBudget {
		result.Outcome = OutcomeBudgetTooLow
		log.WithFields(log.Fields{"draw": result.ID, "budget": budget, "min_budget": s.minBudget}).
			Info("[DRAW] budget below threshold")
		return result
	}

	selected := s.selector.Select(budget, catalog.Items(), active)
	if len(selected) == 0 {
		result.Outcome = OutcomeNoCombination
		log.WithFields(log.Fields{"draw": result.ID, "budget": budget, "active": len(active)}).
			Info("[DRAW] no affordable combination")
		return result
	}

	for _, item := range selected {
		result.Total += item.Price
	}
	result.Items = selected
	result.Remaining = budget - result.Total
	result.Outcome = OutcomeOK

	log.WithFields(log.Fields{"draw": result.ID, "budget": budget, "total": result.Total, "items": len(selected)}).
		Info("[DRAW] proposal ready")
	return result
}

// Message is the line shown to the user for this draw
func (r DrawResult) Message() string {
	switch r.Outcome {
	case OutcomeOK:
		return fmt.Sprintf("予算: %d円 中 %d円のメニューを提案します！", r.Budget, r.Total)
	case OutcomeBudgetTooLow:
		return fmt.Sprintf("予算が少なすぎます。最低%d円以上を設定してください。", r.MinBudget)
	default:
		return "指定された予算内でメニューを見つけることができませんでした。"
	}
}
