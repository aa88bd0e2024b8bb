package menu

import (
	"MenuGacha/config"
	"MenuGacha/services/gacha"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMenuFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceJSON(t *testing.T) {
	path := writeMenuFile(t, "menu.json", `{
		"menu_items": [
			{"id": 1, "name": "ミラノ風ドリア", "price": 300, "category": "ドリア", "description": "定番"},
			{"name": "小エビのサラダ", "price": 350, "category": "サラダ"},
			{"id": 7, "name": "ミラノ風ドリア", "price": 350, "category": "ドリア", "description": null}
		]
	}`)

	records, err := NewFileSource(path).Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "定番", records[0].Description)
	assert.Equal(t, 2, records[1].ID, "missing id falls back to the file position")
	assert.Equal(t, 7, records[2].ID)
	assert.Equal(t, "", records[2].Description)
}

func TestFileSourceYAML(t *testing.T) {
	path := writeMenuFile(t, "menu.yaml", `
menu_items:
  - name: ティラミス
    price: 300
    category: デザート
  - id: 10
    name: 辛味チキン
    price: 300
    category: サイドメニュー
    description: 2本
`)

	records, err := NewFileSource(path).Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 10, records[1].ID)
	assert.Equal(t, "2本", records[1].Description)
}

func TestFileSourceDuplicateLastWins(t *testing.T) {
	path := writeMenuFile(t, "menu.json", `{"menu_items": [
		{"id": 1, "name": "A", "price": 100, "category": "X"},
		{"id": 2, "name": "A", "price": 150, "category": "X"}
	]}`)

	records, err := NewFileSource(path).Records(context.Background())
	require.NoError(t, err)
	catalog, err := gacha.NewCatalog(records, nil)
	require.NoError(t, err)

	require.Equal(t, 1, catalog.Len())
	item, _ := catalog.Lookup("A")
	assert.Equal(t, 150, item.Price)
}

func TestFileSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken json", "menu.json", `{"menu_items": [`},
		{"no list", "menu.json", `{"items": []}`},
		{"missing name", "menu.json", `{"menu_items": [{"price": 100, "category": "X"}]}`},
		{"missing category", "menu.json", `{"menu_items": [{"name": "A", "price": 100}]}`},
		{"string price", "menu.json", `{"menu_items": [{"name": "A", "price": "100", "category": "X"}]}`},
		{"fractional price", "menu.json", `{"menu_items": [{"name": "A", "price": 99.5, "category": "X"}]}`},
		{"broken yaml", "menu.yml", "menu_items: [\n  - name: A\n  price"},
		{"yaml missing price", "menu.yaml", "menu_items:\n  - name: A\n    category: X\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewFileSource(writeMenuFile(t, tt.file, tt.content))
			records, err := source.Records(context.Background())
			assert.Nil(t, records)

			var loadErr *gacha.DataLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, source.Name(), loadErr.Source)
		})
	}

	t.Run("unreadable file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Records(context.Background())
		var loadErr *gacha.DataLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestBundledMenuFile(t *testing.T) {
	records, err := NewFileSource(filepath.Join("..", "..", "data", "menu.json")).Records(context.Background())
	require.NoError(t, err)

	catalog, err := gacha.NewCatalog(records, config.DefaultCategoryOrder)
	require.NoError(t, err)
	assert.Equal(t, len(records), catalog.Len(), "bundled menu has no duplicate names")
	assert.Equal(t, config.DefaultCategoryOrder, catalog.Categories())
}
