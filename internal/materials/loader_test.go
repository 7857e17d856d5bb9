// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mec-library/pkg/types"
)

func TestReadSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	data, err := ReadSource(context.Background(), path, types.HTTPConfig{})
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.html"), types.HTTPConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadSource_HTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mec-library/test", r.Header.Get("User-Agent"))
		w.Write([]byte(`<div id="page-content"></div>`))
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "mec-library/test", MaxRetries: 1}
	data, err := ReadSource(context.Background(), ts.URL+"/materials.html", cfg)
	require.NoError(t, err)
	assert.Equal(t, `<div id="page-content"></div>`, string(data))
}

func TestReadSource_UnsupportedScheme(t *testing.T) {
	_, err := ReadSource(context.Background(), "ftp://example.org/materials.html", types.HTTPConfig{})
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
