package gacha

import (
	"MenuGacha/models"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saizeriyaOrder = []string{"サラダ", "スープ", "パン", "サイドメニュー", "ピザ", "ドリア", "パスタ", "肉メイン", "ライス", "デザート", "お酒", "トッピング"}

func TestNewCatalogDeduplicatesLastWins(t *testing.T) {
	records := []models.MenuItem{
		{ID: 1, Name: "A", Price: 100, Category: "X"},
		{ID: 2, Name: "B", Price: 300, Category: "X"},
		{ID: 3, Name: "A", Price: 150, Category: "X", Description: "newer"},
	}

	catalog, err := NewCatalog(records, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.Len())
	item, ok := catalog.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 150, item.Price)
	assert.Equal(t, "newer", item.Description)
	// First-seen position is kept
	assert.Equal(t, []string{"A", "B"}, names(catalog.Items()))
}

func TestNewCatalogIsIdempotent(t *testing.T) {
	records := []models.MenuItem{
		{ID: 1, Name: "A", Price: 100, Category: "X"},
		{ID: 2, Name: "A", Price: 150, Category: "X"},
		{ID: 3, Name: "B", Price: 300, Category: "Y"},
		{ID: 4, Name: "B", Price: 300, Category: "Y"},
	}

	first, err := NewCatalog(records, saizeriyaOrder)
	require.NoError(t, err)
	second, err := NewCatalog(records, saizeriyaOrder)
	require.NoError(t, err)

	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, first.Categories(), second.Categories())
}

func TestNewCatalogCategoryOrder(t *testing.T) {
	records := []models.MenuItem{
		{ID: 1, Name: "ティラミス", Price: 300, Category: "デザート"},
		{ID: 2, Name: "ミラノ風ドリア", Price: 300, Category: "ドリア"},
		{ID: 3, Name: "小エビのサラダ", Price: 350, Category: "サラダ"},
		{ID: 4, Name: "謎の品", Price: 500, Category: "限定"},
	}

	t.Run("preferred order drops unknown categories", func(t *testing.T) {
		catalog, err := NewCatalog(records, saizeriyaOrder)
		require.NoError(t, err)
		assert.Equal(t, []string{"サラダ", "ドリア", "デザート"}, catalog.Categories())
		assert.False(t, catalog.HasCategory("限定"))
		// The item itself stays in the catalog
		_, ok := catalog.Lookup("謎の品")
		assert.True(t, ok)
	})

	t.Run("alphabetical without preferred order", func(t *testing.T) {
		catalog, err := NewCatalog([]models.MenuItem{
			{ID: 1, Name: "a", Price: 1, Category: "Soup"},
			{ID: 2, Name: "b", Price: 1, Category: "Bread"},
			{ID: 3, Name: "c", Price: 1, Category: "Pasta"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bread", "Pasta", "Soup"}, catalog.Categories())
	})
}

func TestNewCatalogRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		record models.MenuItem
	}{
		{"missing name", models.MenuItem{ID: 1, Price: 100, Category: "X"}},
		{"missing category", models.MenuItem{ID: 1, Name: "A", Price: 100}},
		{"negative price", models.MenuItem{ID: 1, Name: "A", Price: -1, Category: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog([]models.MenuItem{{ID: 9, Name: "ok", Price: 1, Category: "X"}, tt.record}, nil)
			assert.Nil(t, catalog)

			var loadErr *DataLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "records", loadErr.Source)
		})
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog, err := NewCatalog(scenarioItems(), nil)
	require.NoError(t, err)

	items := catalog.Items()
	items[0].Price = 1
	categories := catalog.Categories()
	categories[0] = "changed"

	item, _ := catalog.Lookup("A")
	assert.Equal(t, 200, item.Price)
	assert.Equal(t, []string{"X", "Y"}, catalog.Categories())
}

func TestCatalogMinPriceAndFilter(t *testing.T) {
	catalog, err := NewCatalog(scenarioItems(), nil)
	require.NoError(t, err)

	price, ok := catalog.MinPrice(NewCategorySet("Y"))
	assert.True(t, ok)
	assert.Equal(t, 1000, price)

	_, ok = catalog.MinPrice(NewCategorySet())
	assert.False(t, ok)

	assert.Equal(t, []string{"A", "B"}, names(Filter(catalog.Items(), NewCategorySet("X"))))
	assert.Empty(t, Filter(catalog.Items(), NewCategorySet()))
}
