package schemeregistry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonus-tax-engine/internal/bracket"
)

const customYAML = `
schemes:
  - id: flat-10
    name: Flat ten percent
    monthly_start_point: 1000
    brackets:
      - rate: 0.1
        quick_deduction: 0
  - id: cn-2019
    name: Overridden
    monthly_start_point: 6000
    brackets:
      - rate: 0.2
`

func TestBuiltin2019(t *testing.T) {
	schemes := Builtin()
	require.Len(t, schemes, 1)

	s := schemes[0]
	assert.Equal(t, "cn-2019", s.ID)
	assert.Equal(t, 5000.0, s.MonthlyStartPoint)
	require.Len(t, s.Brackets, 7)

	assert.Nil(t, s.Brackets[0].Lower)
	assert.Equal(t, 3000.0, *s.Brackets[0].Upper)
	assert.Equal(t, 0.03, s.Brackets[0].Rate)
	assert.Equal(t, 80000.0, *s.Brackets[6].Lower)
	assert.Nil(t, s.Brackets[6].Upper)
	assert.Equal(t, 15160.0, s.Brackets[6].QuickDeduction)

	assert.Equal(t, []float64{3000, 12000, 25000, 35000, 55000, 80000}, s.Boundaries())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not yaml", "schemes: [", "failed to parse scheme YAML"},
		{"no schemes", "schemes: []", "defines no schemes"},
		{"missing id", "schemes:\n  - brackets:\n      - rate: 0.1\n", "scheme without id"},
		{"negative threshold", "schemes:\n  - id: x\n    monthly_start_point: -1\n    brackets:\n      - rate: 0.1\n", "negative monthly_start_point"},
		{"gap", "schemes:\n  - id: x\n    brackets:\n      - upper: 10\n        rate: 0.1\n      - lower: 20\n        rate: 0.2\n", "gap or overlap"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseGapIsConfigError(t *testing.T) {
	_, err := Parse([]byte("schemes:\n  - id: x\n    brackets:\n      - upper: 10\n        rate: 0.1\n      - lower: 20\n        rate: 0.2\n"))
	var cfgErr *bracket.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewWithFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customYAML), 0o644))

	r, err := New(Options{Files: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, []string{"cn-2019", "flat-10"}, r.IDs())

	s, err := r.Get(context.Background(), "flat-10")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.MonthlyStartPoint)

	overridden, err := r.Get(context.Background(), "cn-2019")
	require.NoError(t, err)
	assert.Equal(t, "Overridden", overridden.Name)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(Options{Files: []string{filepath.Join(t.TempDir(), "missing.yaml")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scheme file")
}

func TestGetUnknownWithoutRemote(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)

	_, err = r.Get(context.Background(), "us-2024")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestGetRemoteIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/schemes/flat-20" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Flat twenty","monthly_start_point":0,"brackets":[{"lower":null,"upper":null,"rate":0.2,"quick_deduction":0}]}`))
	}))
	defer srv.Close()

	r, err := New(Options{RemoteURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s, err := r.Get(context.Background(), "flat-20")
		require.NoError(t, err)
		assert.Equal(t, "flat-20", s.ID)
		assert.Equal(t, 0.2, s.Brackets[0].Rate)
	}
	assert.Equal(t, int32(1), hits.Load())

	// built-ins never reach the remote registry
	_, err = r.Get(context.Background(), "cn-2019")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetRemoteFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schemes/broken":
			_, _ = w.Write([]byte(`{"brackets":[{"upper":10,"rate":0.1}]}`))
		case "/schemes/garbage":
			_, _ = w.Write([]byte(`{`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	r, err := New(Options{RemoteURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	for _, id := range []string{"broken", "garbage", "down"} {
		_, err := r.Get(context.Background(), id)
		assert.ErrorIs(t, err, ErrUnknownScheme, id)
	}
}

func TestGetRemoteEscapesID(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		if r.URL.EscapedPath() != "/schemes/eu%2Fde-2024" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Flat","brackets":[{"rate":0.1}]}`))
	}))
	defer srv.Close()

	r, err := New(Options{RemoteURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	s, err := r.Get(context.Background(), "eu/de-2024")
	require.NoError(t, err)
	assert.Equal(t, "eu/de-2024", s.ID)

	_, err = r.Get(context.Background(), "../admin")
	assert.ErrorIs(t, err, ErrUnknownScheme)
	assert.Equal(t, []string{"/schemes/eu%2Fde-2024", "/schemes/..%2Fadmin"}, paths)
}
