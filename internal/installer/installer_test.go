package installer

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildArchive(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, body := range members {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestEnsureCLIUsesExistingRuntimeBinary(t *testing.T) {
	dataDir := t.TempDir()
	binPath := filepath.Join(dataDir, "bin", "bw")
	require.NoError(t, os.MkdirAll(filepath.Dir(binPath), 0o755))
	require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\n"), 0o644))

	inst := New(t.TempDir(), dataDir, "https://example.invalid/bw.zip")
	got, err := inst.EnsureCLI(context.Background())
	require.NoError(t, err)
	require.Equal(t, binPath, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestEnsureCLIPrefersDefaultsOverBundled(t *testing.T) {
	pluginDir := t.TempDir()
	defaultsBin := filepath.Join(pluginDir, "defaults", "bw")
	bundledBin := filepath.Join(pluginDir, "bin", "bw")
	for _, p := range []string{defaultsBin, bundledBin} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755))
	}

	inst := New(pluginDir, t.TempDir(), "https://example.invalid/bw.zip")
	got, err := inst.EnsureCLI(context.Background())
	require.NoError(t, err)
	require.Equal(t, defaultsBin, got)
}

func TestEnsureCLIDownloadsAndExtracts(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"bw-linux/":       "",
		"bw-linux/README": "docs",
		"bw-linux/bw":     "#!/bin/sh\necho cli\n",
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	dataDir := t.TempDir()
	inst := New(t.TempDir(), dataDir, server.URL+"/bw-oss-linux.zip")
	got, err := inst.EnsureCLI(context.Background())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "bin", "bw"), got)

	body, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Contains(t, string(body), "echo cli")

	// archive is kept next to the binary for later reinstalls
	require.FileExists(t, filepath.Join(dataDir, "bin", "bw-oss-linux.zip"))

	// second call short-circuits on the runtime binary even if the server dies
	server.Close()
	again, err := inst.EnsureCLI(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureCLIUsesLocalArchiveWithoutDownload(t *testing.T) {
	archive := buildArchive(t, map[string]string{"bw": "#!/bin/sh\n"})
	pluginDir := t.TempDir()
	archivePath := filepath.Join(pluginDir, "defaults", "bw-oss-linux.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(archivePath), 0o755))
	require.NoError(t, os.WriteFile(archivePath, archive, 0o644))

	dataDir := t.TempDir()
	inst := New(pluginDir, dataDir, "https://example.invalid/bw-oss-linux.zip")
	got, err := inst.EnsureCLI(context.Background())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "bin", "bw"), got)
}

func TestEnsureCLIArchiveWithoutBinaryFails(t *testing.T) {
	archive := buildArchive(t, map[string]string{"README": "no binary here"})
	pluginDir := t.TempDir()
	archivePath := filepath.Join(pluginDir, "bin", "bw-oss-linux.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(archivePath), 0o755))
	require.NoError(t, os.WriteFile(archivePath, archive, 0o644))

	inst := New(pluginDir, t.TempDir(), "https://example.invalid/bw-oss-linux.zip")
	_, err := inst.EnsureCLI(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found in archive")
}

func TestEnsureCLIDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	inst := New(t.TempDir(), t.TempDir(), server.URL+"/bw.zip")
	_, err := inst.EnsureCLI(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
}
