package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/atlanticdynamic/portalscripts/internal/metrics"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/atlanticdynamic/portalscripts/internal/scripting/engines"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testScripts = fstest.MapFS{
	"portal/warpTower.lua": {Data: []byte(`
function enter(pi)
	pi:playPortalSound()
	pi:warp(100000000, "sp")
	return true
end
`)},
	"portal/closedGate.lua": {Data: []byte(`
function enter(pi)
	pi:message("The gate is sealed.")
	return false
end
`)},
	"portal/brokenGate.lua": {Data: []byte(`
function enter(pi)
	return true
`)},
	"portal/noEntry.lua": {Data: []byte(`
local x = 1
`)},
	"portal/readme.txt": {Data: []byte(`not a script`)},
}

func newTestCache(t *testing.T) *scripting.Cache {
	t.Helper()

	handler := slog.DiscardHandler
	loader, ext, err := engines.New(engines.TypeLua, testScripts, handler)
	require.NoError(t, err)

	cache, err := scripting.New(loader, ext,
		scripting.WithLogHandler(handler),
		scripting.WithMetrics(metrics.New(prometheus.NewRegistry())),
	)
	require.NoError(t, err)
	return cache
}

// writeScripts copies testScripts into a temp directory and returns its path.
func writeScripts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, f := range testScripts {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}
	return dir
}
