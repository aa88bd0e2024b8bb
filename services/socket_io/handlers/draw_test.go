package handlers

import (
	"MenuGacha/models"
	"MenuGacha/services/gacha"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrawArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []interface{}
		want    DrawArgs
		wantErr bool
	}{
		{
			name: "budget only",
			args: []interface{}{map[string]interface{}{"budget": float64(1000)}},
			want: DrawArgs{Budget: 1000},
		},
		{
			name: "bare number",
			args: []interface{}{float64(500)},
			want: DrawArgs{Budget: 500},
		},
		{
			name: "json number",
			args: []interface{}{json.Number("300")},
			want: DrawArgs{Budget: 300},
		},
		{
			name: "with categories",
			args: []interface{}{map[string]interface{}{
				"budget":     float64(800),
				"categories": []interface{}{"ドリア", "パスタ"},
			}},
			want: DrawArgs{Budget: 800, Categories: []string{"ドリア", "パスタ"}, HasCategories: true},
		},
		{
			name: "empty category list is kept",
			args: []interface{}{map[string]interface{}{
				"budget":     float64(800),
				"categories": []interface{}{},
			}},
			want: DrawArgs{Budget: 800, Categories: []string{}, HasCategories: true},
		},
		{name: "no args", args: nil, wantErr: true},
		{name: "missing budget", args: []interface{}{map[string]interface{}{}}, wantErr: true},
		{name: "string budget", args: []interface{}{"1000"}, wantErr: true},
		{name: "fractional budget", args: []interface{}{float64(10.5)}, wantErr: true},
		{name: "negative budget", args: []interface{}{float64(-1)}, wantErr: true},
		{name: "budget over max", args: []interface{}{float64(10001)}, wantErr: true},
		{
			name:    "categories not a list",
			args:    []interface{}{map[string]interface{}{"budget": float64(800), "categories": "ドリア"}},
			wantErr: true,
		},
		{
			name:    "category not a string",
			args:    []interface{}{map[string]interface{}{"budget": float64(800), "categories": []interface{}{1}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDrawArgs(10000, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubCatalogs struct {
	catalog *gacha.Catalog
	err     error
}

func (s stubCatalogs) Catalog(ctx context.Context) (*gacha.Catalog, error) {
	return s.catalog, s.err
}

func TestRunDraw(t *testing.T) {
	catalog, err := gacha.NewCatalog([]models.MenuItem{
		{ID: 1, Name: "ミラノ風ドリア", Price: 300, Category: "ドリア"},
		{ID: 2, Name: "ドリンクバー", Price: 200, Category: "ドリンク"},
	}, nil)
	require.NoError(t, err)
	service := gacha.NewService(gacha.NewSelector(7), 199, 10000)
	ctx := context.Background()

	t.Run("every category without a list", func(t *testing.T) {
		event, payload := RunDraw(ctx, stubCatalogs{catalog: catalog}, service,
			map[string]interface{}{"budget": float64(500)})
		require.Equal(t, "draw_result", event)

		result := payload["result"].(gacha.DrawResult)
		assert.Equal(t, gacha.OutcomeOK, result.Outcome)
		assert.Equal(t, 500, result.Total)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, result.Message(), payload["message"])
	})

	t.Run("named categories only", func(t *testing.T) {
		event, payload := RunDraw(ctx, stubCatalogs{catalog: catalog}, service,
			map[string]interface{}{"budget": float64(500), "categories": []interface{}{"ドリンク"}})
		require.Equal(t, "draw_result", event)

		result := payload["result"].(gacha.DrawResult)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "ドリンクバー", result.Items[0].Name)
	})

	t.Run("empty list means nothing", func(t *testing.T) {
		event, payload := RunDraw(ctx, stubCatalogs{catalog: catalog}, service,
			map[string]interface{}{"budget": float64(500), "categories": []interface{}{}})
		require.Equal(t, "draw_result", event)

		result := payload["result"].(gacha.DrawResult)
		assert.Equal(t, gacha.OutcomeNoCombination, result.Outcome)
		assert.Empty(t, result.Items)
	})

	t.Run("bad arguments", func(t *testing.T) {
		event, payload := RunDraw(ctx, stubCatalogs{catalog: catalog}, service, "lots")
		assert.Equal(t, "error", event)
		assert.Contains(t, payload, "error")
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		failing := stubCatalogs{err: gacha.NewDataLoadError("db", errors.New("connection refused"))}
		event, payload := RunDraw(ctx, failing, service, float64(500))
		assert.Equal(t, "error", event)
		assert.Equal(t, "Menu data unavailable", payload["error"])
	})
}
