package menu

import (
	"MenuGacha/models"
	"MenuGacha/services/gacha"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// FileSource reads a menu file holding a "menu_items" list. JSON and YAML
// files are supported, picked by extension. Records without an id get their
// 1-based position in the file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Records(ctx context.Context) ([]models.MenuItem, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, gacha.NewDataLoadError(s.Name(), err)
	}

	var records []models.MenuItem
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		records, err = parseYAMLMenu(data)
	default:
		records, err = parseJSONMenu(data)
	}
	if err != nil {
		return nil, gacha.NewDataLoadError(s.Name(), err)
	}
	return records, nil
}

func parseJSONMenu(data []byte) ([]models.MenuItem, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}
	list := gjson.GetBytes(data, "menu_items")
	if !list.IsArray() {
		return nil, errors.New("menu_items list not found")
	}

	entries := list.Array()
	records := make([]models.MenuItem, 0, len(entries))
	for position, v := range entries {
		name, price, category := v.Get("name"), v.Get("price"), v.Get("category")
		switch {
		case name.Type != gjson.String:
			return nil, fmt.Errorf("menu_items[%d]: missing name", position)
		case category.Type != gjson.String:
			return nil, fmt.Errorf("menu_items[%d]: missing category", position)
		case price.Type != gjson.Number || price.Num != math.Trunc(price.Num):
			return nil, fmt.Errorf("menu_items[%d]: price must be an integer", position)
		}

		id := position + 1
		if v.Get("id").Exists() {
			id = int(v.Get("id").Int())
		}

		records = append(records, models.MenuItem{
			ID:          id,
			Name:        name.String(),
			Price:       int(price.Int()),
			Category:    category.String(),
			Description: v.Get("description").String(),
		})
	}
	return records, nil
}

type yamlMenu struct {
	MenuItems []struct {
		ID          *int    `yaml:"id"`
		Name        *string `yaml:"name"`
		Price       *int    `yaml:"price"`
		Category    *string `yaml:"category"`
		Description string  `yaml:"description"`
	} `yaml:"menu_items"`
}

func parseYAMLMenu(data []byte) ([]models.MenuItem, error) {
	var doc yamlMenu
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	if doc.MenuItems == nil {
		return nil, errors.New("menu_items list not found")
	}

	records := make([]models.MenuItem, 0, len(doc.MenuItems))
	for i, raw := range doc.MenuItems {
		switch {
		case raw.Name == nil:
			return nil, fmt.Errorf("menu_items[%d]: missing name", i)
		case raw.Category == nil:
			return nil, fmt.Errorf("menu_items[%d]: missing category", i)
		case raw.Price == nil:
			return nil, fmt.Errorf("menu_items[%d]: missing price", i)
		}

		id := i + 1
		if raw.ID != nil {
			id = *raw.ID
		}
		records = append(records, models.MenuItem{
			ID:          id,
			Name:        *raw.Name,
			Price:       *raw.Price,
			Category:    *raw.Category,
			Description: raw.Description,
		})
	}
	return records, nil
}
