package web

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	g := &Globals{Name: "Riverside <Metro>", Width: 1200, Height: 800, Tuning: pan.DefaultTuning()}
	var buf bytes.Buffer
	require.NoError(t, Index("/pan", g).Render(context.Background(), &buf))
	page := buf.String()

	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "<title>Riverside &lt;Metro&gt;</title>")
	assert.Contains(t, page, `data-pan-path="/pan"`)

	const open = `<script id="globals" type="application/json">`
	start := strings.Index(page, open)
	require.GreaterOrEqual(t, start, 0)
	body := page[start+len(open):]
	body = body[:strings.Index(body, "</script>")]

	var decoded Globals
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, *g, decoded)
}
