package handlers

import (
	gacha_constants "MenuGacha/constants/gacha"
	"MenuGacha/services/gacha"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/zishang520/socket.io/v2/socket"
)

// CatalogSource hands out the loaded catalog
type CatalogSource interface {
	Catalog(ctx context.Context) (*gacha.Catalog, error)
}

// DrawArgs is the payload of a "draw" event. Without a categories list every
// category of the catalog is active.
type DrawArgs struct {
	Budget        int
	Categories    []string
	HasCategories bool
}

var errMissingBudget = errors.New("missing budget")

// ParseDrawArgs accepts either {"budget": n, "categories": [...]} or a bare
// budget number as the first event argument.
func ParseDrawArgs(maxBudget int, args ...interface{}) (DrawArgs, error) {
	var parsed DrawArgs
	if len(args) < 1 || args[0] == nil {
		return parsed, errMissingBudget
	}

	payload, ok := args[0].(map[string]interface{})
	if !ok {
		budget, err := toBudget(args[0], maxBudget)
		if err != nil {
			return parsed, err
		}
		parsed.Budget = budget
		return parsed, nil
	}

	rawBudget, ok := payload["budget"]
	if !ok {
		return parsed, errMissingBudget
	}
	budget, err := toBudget(rawBudget, maxBudget)
	if err != nil {
		return parsed, err
	}
	parsed.Budget = budget

	rawCategories, ok := payload["categories"]
	if !ok || rawCategories == nil {
		return parsed, nil
	}
	list, ok := rawCategories.([]interface{})
	if !ok {
		return parsed, errors.New("categories must be a list")
	}
	parsed.HasCategories = true
	parsed.Categories = make([]string, 0, len(list))
	for _, raw := range list {
		category, ok := raw.(string)
		if !ok {
			return parsed, errors.New("categories must be strings")
		}
		parsed.Categories = append(parsed.Categories, category)
	}
	return parsed, nil
}

func toBudget(raw interface{}, maxBudget int) (int, error) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid budget: %w", err)
		}
		value = f
	default:
		return 0, fmt.Errorf("invalid budget type %T", raw)
	}

	if value != math.Trunc(value) {
		return 0, errors.New("budget must be a whole number")
	}
	if value < 0 || value > float64(maxBudget) {
		return 0, fmt.Errorf("budget must be between 0 and %d", maxBudget)
	}
	return int(value), nil
}

// HandleDraw runs one gacha draw for the client and emits "draw_result"
func HandleDraw(client *socket.Socket, catalogs CatalogSource, service *gacha.Service) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.WithFields(log.Fields{"socket": client.Id(), "args": args}).Debug("[DRAW] draw event")

		ctx, cancel := context.WithTimeout(context.Background(), gacha_constants.SOCKET_DRAW_TIMEOUT)
		defer cancel()

		event, payload := RunDraw(ctx, catalogs, service, args...)
		client.Emit(event, payload)
	}
}

// RunDraw answers one "draw" event. It returns the event to emit, either
// "draw_result" or "error", and its payload.
func RunDraw(ctx context.Context, catalogs CatalogSource, service *gacha.Service, args ...interface{}) (string, gin.H) {
	parsed, err := ParseDrawArgs(service.MaxBudget(), args...)
	if err != nil {
		return "error", gin.H{"error": err.Error()}
	}

	catalog, err := catalogs.Catalog(ctx)
	if err != nil {
		log.WithError(err).Error("[DRAW-ERROR] menu data unavailable")
		return "error", gin.H{"error": "Menu data unavailable"}
	}

	active := gacha.NewCategorySet(catalog.Categories()...)
	if parsed.HasCategories {
		active = gacha.NewCategorySet(parsed.Categories...)
	}

	result := service.Draw(catalog, parsed.Budget, active)
	return "draw_result", gin.H{
		"message": result.Message(),
		"result":  result,
	}
}
