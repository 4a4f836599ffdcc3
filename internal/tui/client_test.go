package tui

import (
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/JackWithOneEye/metroview/cmd/web"
	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, saved *[]byte) string {
	t.Helper()
	mapJSON, err := os.ReadFile("../../maps/metro.json")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /globals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(web.Globals{Name: "Riverside Metro", Width: 240, Height: 120, Tuning: pan.DefaultTuning()})
	})
	mux.HandleFunc("GET /map", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(mapJSON)
	})
	mux.HandleFunc("GET /view", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(web.View{X: 30, Y: 40, Saved: true})
	})
	mux.HandleFunc("POST /view", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*saved = b
		_ = json.NewEncoder(w).Encode(web.View{X: 1, Y: 2, Saved: true})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return strings.TrimPrefix(ts.URL, "http://")
}

func TestLoadMap(t *testing.T) {
	var saved []byte
	host := newAPI(t, &saved)

	res, ok := loadMap(host)().(mapLoadedResult)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, "Riverside Metro", res.Globals.Name)
	assert.Equal(t, pan.DefaultTuning(), res.Globals.Tuning)
	assert.Equal(t, loadTestMap(t), res.Map)
	assert.Equal(t, web.View{X: 30, Y: 40, Saved: true}, res.View)
}

func TestLoadMapError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	res := loadMap(strings.TrimPrefix(ts.URL, "http://"))().(mapLoadedResult)
	assert.ErrorContains(t, res.Err, "could not get globals")
	assert.Nil(t, res.Map)
}

func TestSaveView(t *testing.T) {
	var saved []byte
	host := newAPI(t, &saved)

	res := saveView(host, image.Pt(12, 34))().(saveViewResult)
	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"x": 12, "y": 34}`, string(saved))
}

func TestSaveViewRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "outside the map", http.StatusBadRequest)
	}))
	defer ts.Close()

	res := saveView(strings.TrimPrefix(ts.URL, "http://"), image.Pt(1000, 1000))().(saveViewResult)
	assert.ErrorContains(t, res.Err, "outside the map")
}
