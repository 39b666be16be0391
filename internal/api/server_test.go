package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/udisondev/craftdex/internal/data"
	"github.com/udisondev/craftdex/internal/model"
	"github.com/udisondev/craftdex/internal/recipe"
	fixtures "github.com/udisondev/craftdex/internal/testutil"
	"github.com/udisondev/craftdex/internal/tree"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingSource struct{}

func (failingSource) Item(context.Context, string) (*model.Item, error) {
	return nil, errors.New("db down")
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	items := append(fixtures.RifleItems(),
		model.Item{ID: "loop_a", Name: "Loop A", Variants: []model.RecipeVariant{{
			Ingredients: []model.Ingredient{{ItemID: "loop_b", Quantity: 1}},
		}}},
		model.Item{ID: "loop_b", Name: "Loop B", Variants: []model.RecipeVariant{{
			Ingredients: []model.Ingredient{{ItemID: "loop_a", Quantity: 1}},
		}}},
	)
	npcs := []model.NPC{
		{ID: "security_guard", Name: "Security Guard", NameFR: "Agent de sécurité", ImagePath: "images/npc_security_guard.png"},
		{ID: "stranger", Name: "Stranger"},
	}
	entries := []model.CompendiumEntry{
		{ID: "leyak", Title: "Leyak", ImagePath: "compendium_leyak.webp"},
	}
	catalog, err := data.NewCatalog(items, npcs, entries)
	require.NoError(t, err)

	srv := NewServer(Config{
		Builder:  recipe.NewBuilder(catalog, 0),
		Items:    catalog,
		Entities: catalog,
		IconSize: 32,
		Registry: prometheus.NewRegistry(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

// get использует клиент тестового сервера: Close() закрывает его idle-соединения.
func get(t *testing.T, ts *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	code, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))
}

func TestDependencies(t *testing.T) {
	_, ts := newTestServer(t)

	code, body := get(t, ts, "/api/recipes/rifle/dependencies")
	require.Equal(t, http.StatusOK, code, string(body))

	var got model.DependencyNode
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, fixtures.RifleTree(), &got)
}

func TestDependencies_WireFormat(t *testing.T) {
	_, ts := newTestServer(t)

	code, body := get(t, ts, "/api/recipes/wood_stock/dependencies?quantity=3")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t,
		`{"item_id":"wood_stock","item_name":"Wood Stock","quantity":3,"craftable":false,"children":[]}`,
		string(body))
}

func TestDependencies_Errors(t *testing.T) {
	srv, ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown item", "/api/recipes/unobtainium/dependencies", http.StatusNotFound},
		{"zero quantity", "/api/recipes/rifle/dependencies?quantity=0", http.StatusBadRequest},
		{"non numeric quantity", "/api/recipes/rifle/dependencies?quantity=lots", http.StatusBadRequest},
		{"cycle", "/api/recipes/loop_a/dependencies", http.StatusUnprocessableEntity},
		{"quantity overflow", "/api/recipes/rifle/dependencies?quantity=4611686018427387904", http.StatusBadRequest},
		{"quantity overflow in tree", "/api/recipes/rifle/tree?quantity=4611686018427387904", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, ts, tt.path)
			assert.Equal(t, tt.want, code, string(body))

			var e errorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.treeBuildsTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.treeBuildsTotal.WithLabelValues("cycle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(srv.metrics.treeBuildsTotal.WithLabelValues("overflow")))
}

func TestDependencies_SourceFailureIsInternal(t *testing.T) {
	srv := NewServer(Config{
		Builder: recipe.NewBuilder(failingSource{}, 0),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	code, body := get(t, ts, "/api/recipes/rifle/dependencies")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, string(body), "db down")
}

func TestTree(t *testing.T) {
	_, ts := newTestServer(t)

	code, body := get(t, ts, "/api/recipes/rifle/tree?quantity=2&size=40")
	require.Equal(t, http.StatusOK, code, string(body))

	var v tree.View
	require.NoError(t, json.Unmarshal(body, &v))

	assert.Equal(t, "Fusil", v.Name)
	assert.Equal(t, "×2", v.QuantityLabel)
	require.NotNil(t, v.Icon)
	assert.Equal(t, "itemicon_rifle", v.Icon.Base)
	assert.Equal(t, 40, v.Icon.Size)

	var order []string
	for _, n := range tree.Flatten(&v) {
		order = append(order, n.ItemID)
	}
	assert.Equal(t, []string{"rifle", "metal_parts", "scrap_metal", "wood_stock"}, order)

	wood := v.Children[1]
	require.NotNil(t, wood.Icon, "falls back to item id")
	assert.Equal(t, "wood_stock", wood.Icon.Base)
}

func TestIcon(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"exact size", "/api/icons/item/itemicon_scrap_metal.png?size=32", "itemicon_scrap_metal-32.webp"},
		{"round up", "/api/icons/item/itemicon_scrap_metal?size=33", "itemicon_scrap_metal-40.webp"},
		{"original", "/api/icons/item/itemicon_scrap_metal?size=100", "itemicon_scrap_metal.webp"},
		{"legacy", "/api/icons/item/itemicon_scrap_metal.webp?legacy=1", "itemicon_scrap_metal.png"},
		{"large profile", "/api/icons/large/npc_guard.png?size=100", "npc_guard-128.webp"},
		{"default size", "/api/icons/item/itemicon_pipe", "itemicon_pipe-32.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, ts, tt.path)
			require.Equal(t, http.StatusOK, code, string(body))

			var got iconResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantPath, got.Path)
			assert.True(t, strings.HasSuffix(got.URL, "/"+tt.wantPath))
		})
	}
}

func TestIcon_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	code, _ := get(t, ts, "/api/icons/portrait/x.png")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, ts, "/api/icons/item/x.png?size=big")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestIcon_NoIdentifierIsNull(t *testing.T) {
	_, ts := newTestServer(t)

	// ".png" после нормализации — пустой идентификатор.
	code, body := get(t, ts, "/api/icons/item/.png")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
}

func TestEntities(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name      string
		path      string
		wantID    string
		wantName  string
		wantImage string // пусто: image == null
	}{
		{"npc localized", "/api/npcs/security_guard?size=100", "security_guard", "Agent de sécurité", "/images/npc_security_guard-128.webp"},
		{"npc default size", "/api/npcs/security_guard", "security_guard", "Agent de sécurité", "/images/npc_security_guard-80.webp"},
		{"npc without image", "/api/npcs/stranger", "stranger", "Stranger", ""},
		{"compendium original", "/api/compendium/leyak?size=512", "leyak", "Leyak", "/images/compendium_leyak.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, ts, tt.path)
			require.Equal(t, http.StatusOK, code, string(body))

			var got entityResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantName, got.Name)
			if tt.wantImage == "" {
				assert.Nil(t, got.Image)
				return
			}
			require.NotNil(t, got.Image)
			assert.Equal(t, tt.wantImage, got.Image.URL)
		})
	}
}

func TestEntities_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown npc", "/api/npcs/nobody", http.StatusNotFound},
		{"unknown compendium entry", "/api/compendium/nothing", http.StatusNotFound},
		{"bad size", "/api/npcs/security_guard?size=huge", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, ts, tt.path)
			assert.Equal(t, tt.want, code, string(body))
		})
	}
}

func TestEntities_NoSourceIsNotFound(t *testing.T) {
	srv := NewServer(Config{
		Builder: recipe.NewBuilder(failingSource{}, 0),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	code, _ := get(t, ts, "/api/npcs/security_guard")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	get(t, ts, "/api/recipes/rifle/dependencies")
	code, body := get(t, ts, "/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `craftdex_tree_builds_total{result="ok"} 1`)
	assert.Contains(t, string(body), "craftdex_http_requests_total")
}
