package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/statesync/pkg/adapters/memory"
	"github.com/aretw0/statesync/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	store := memory.NewStore()
	err := store.Publish(context.Background(), domain.Snapshot{
		Machine: "hero",
		Frame:   7,
		Active:  true,
		Layers: []domain.LayerView{
			{Index: 0, Name: "Base", Current: "Run", Last: "Idle"},
			{Index: 1, Name: "Upper", Last: "Aim"},
		},
		States: []domain.StateView{
			{Kind: "Idle", Enabled: true},
			{Kind: "RunState", Enabled: true, Executing: true, Frames: 3, Seconds: 0.05},
		},
	})
	require.NoError(t, err)
	return NewHandler(store, opts...)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetLayer(t *testing.T) {
	h := seededHandler(t)

	w := get(t, h, "/machines/hero/layers/0")
	require.Equal(t, http.StatusOK, w.Code)

	var layer domain.LayerView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&layer))
	assert.Equal(t, domain.Kind("Run"), layer.Current)
	assert.Equal(t, domain.Kind("Idle"), layer.Last)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/machines/hero/layers/5").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/machines/hero/layers/x").Code)
}

func TestGetState_CaseInsensitive(t *testing.T) {
	h := seededHandler(t)

	for _, name := range []string{"runstate", "RUNSTATE", "RunState"} {
		w := get(t, h, "/machines/hero/states/"+name)
		require.Equal(t, http.StatusOK, w.Code, name)

		var view domain.StateView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, domain.Kind("RunState"), view.Kind)
		assert.Equal(t, uint64(3), view.Frames)
	}

	assert.Equal(t, http.StatusNotFound, get(t, h, "/machines/hero/states/jump").Code)
}

func TestUnknownMachine(t *testing.T) {
	h := seededHandler(t)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/machines/villain").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/machines/villain/layers").Code)
}

func TestListMachines(t *testing.T) {
	h := seededHandler(t)

	w := get(t, h, "/machines")
	require.Equal(t, http.StatusOK, w.Code)

	var machines []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&machines))
	assert.Equal(t, []string{"hero"}, machines)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMount(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("statesync_state_enters_total 1\n"))
	})

	assert.Equal(t, http.StatusNotFound, get(t, seededHandler(t), "/metrics").Code)

	w := get(t, seededHandler(t, WithMetrics(metrics)), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "statesync_state_enters_total")
}
