package registry_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/registry"
	"go.trai.ch/solres/internal/core/domain"
)

func tarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "package/dir", Typeflag: tar.TypeDir, Mode: 0o755}))
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

type fakeNPM struct {
	server      *httptest.Server
	packuments  atomic.Int32
	lastPath    atomic.Value
	lastAccept  atomic.Value
	tarballData []byte
}

func newFakeNPM(t *testing.T) *fakeNPM {
	t.Helper()
	f := &fakeNPM{
		tarballData: tarball(t, map[string]string{
			"package/package.json":           `{"name":"@openzeppelin/contracts"}`,
			"package/token/ERC20/ERC20.sol":  "contract ERC20 {}",
			"package/token/ERC20/IERC20.sol": "interface IERC20 {}",
			"package/../escape.sol":          "nope",
		}),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/@openzeppelin%2fcontracts":
			f.packuments.Add(1)
			f.lastPath.Store(r.URL.EscapedPath())
			f.lastAccept.Store(r.Header.Get("Accept"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":      "@openzeppelin/contracts",
				"dist-tags": map[string]string{"latest": "4.8.3"},
				"versions": map[string]any{
					"4.8.3": map[string]any{"version": "4.8.3", "dist": map[string]string{"tarball": f.server.URL + "/tarballs/contracts-4.8.3.tgz"}},
					"5.0.0": map[string]any{"version": "5.0.0", "dist": map[string]string{"tarball": f.server.URL + "/tarballs/missing.tgz"}},
				},
			})
		case "/tarballs/contracts-4.8.3.tgz":
			_, _ = w.Write(f.tarballData)
		case "/broken":
			_, _ = w.Write([]byte("{not json"))
		case "/flaky":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	})
	f.server = httptest.NewServer(handler)
	t.Cleanup(f.server.Close)
	return f
}

func TestNPMClient_FetchVersions(t *testing.T) {
	f := newFakeNPM(t)
	client := registry.NewNPMClient(f.server.URL+"/", 5*time.Second)
	ctx := context.Background()

	versions, err := client.FetchVersions(ctx, "@openzeppelin/contracts")
	require.NoError(t, err)
	assert.Equal(t, []string{"4.8.3", "5.0.0"}, versions)
	assert.Equal(t, "/@openzeppelin%2fcontracts", f.lastPath.Load())
	assert.Contains(t, f.lastAccept.Load(), "application/vnd.npm.install-v1+json")

	// packuments are cached per client
	_, err = client.FetchVersions(ctx, "@openzeppelin/contracts")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.packuments.Load())
}

func TestNPMClient_FetchPackageFiles(t *testing.T) {
	f := newFakeNPM(t)
	client := registry.NewNPMClient(f.server.URL, 5*time.Second)

	files, err := client.FetchPackageFiles(context.Background(), "@openzeppelin/contracts", "4.8.3")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"package.json":           `{"name":"@openzeppelin/contracts"}`,
		"token/ERC20/ERC20.sol":  "contract ERC20 {}",
		"token/ERC20/IERC20.sol": "interface IERC20 {}",
	}, files)
}

func TestNPMClient_Errors(t *testing.T) {
	f := newFakeNPM(t)
	client := registry.NewNPMClient(f.server.URL, 5*time.Second)
	ctx := context.Background()

	_, err := client.FetchVersions(ctx, "left-pad")
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = client.FetchVersions(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrRegistryDecodeFailed)

	_, err = client.FetchVersions(ctx, "flaky")
	assert.ErrorIs(t, err, domain.ErrRegistryRequestFailed)

	_, err = client.FetchPackageFiles(ctx, "@openzeppelin/contracts", "9.9.9")
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)

	// the tarball of 5.0.0 is missing from the server
	_, err = client.FetchPackageFiles(ctx, "@openzeppelin/contracts", "5.0.0")
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestNPMClient_Canceled(t *testing.T) {
	f := newFakeNPM(t)
	client := registry.NewNPMClient(f.server.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.FetchVersions(ctx, "@openzeppelin/contracts")
	assert.ErrorIs(t, err, domain.ErrRegistryRequestFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
