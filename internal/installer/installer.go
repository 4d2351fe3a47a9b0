package installer

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const binaryName = "bw"

// Installer locates the Bitwarden CLI binary, downloading and extracting a
// release archive into the runtime dir when no usable copy is shipped with
// the plugin.
type Installer struct {
	pluginDir   string
	dataDir     string
	downloadURL string
	client      *http.Client

	mu sync.Mutex
}

func New(pluginDir, dataDir, downloadURL string) *Installer {
	return &Installer{
		pluginDir:   pluginDir,
		dataDir:     dataDir,
		downloadURL: downloadURL,
		client:      &http.Client{Timeout: 5 * time.Minute},
	}
}

func (i *Installer) runtimePath() string {
	return filepath.Join(i.dataDir, "bin", binaryName)
}

// candidatePaths is ordered: a runtime copy wins over the plugin's shipped
// defaults, which win over a bundled bin dir.
func (i *Installer) candidatePaths() []string {
	return []string{
		i.runtimePath(),
		filepath.Join(i.pluginDir, "defaults", binaryName),
		filepath.Join(i.pluginDir, "bin", binaryName),
	}
}

func (i *Installer) archiveName() (string, error) {
	parsed, err := url.Parse(i.downloadURL)
	if err != nil {
		return "", fmt.Errorf("parse download url: %w", err)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("download url has no archive name: %s", i.downloadURL)
	}
	return name, nil
}

func (i *Installer) candidateArchives(archiveName string) []string {
	return []string{
		filepath.Join(i.pluginDir, "defaults", archiveName),
		filepath.Join(i.pluginDir, "bin", archiveName),
		filepath.Join(i.dataDir, "bin", archiveName),
	}
}

// EnsureCLI returns the path of a ready-to-run bw binary. It is idempotent
// and cheap once a runtime copy exists.
func (i *Installer) EnsureCLI(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	binPath := ""
	for _, candidate := range i.candidatePaths() {
		if fileExists(candidate) {
			binPath = candidate
			break
		}
	}

	if binPath == "" {
		archiveName, err := i.archiveName()
		if err != nil {
			return "", err
		}
		archivePath := ""
		for _, candidate := range i.candidateArchives(archiveName) {
			if fileExists(candidate) {
				archivePath = candidate
				break
			}
		}
		if archivePath == "" {
			archivePath = filepath.Join(i.dataDir, "bin", archiveName)
			if err := i.download(ctx, archivePath); err != nil {
				return "", err
			}
		}
		binPath = i.runtimePath()
		if err := extractBinary(archivePath, binPath); err != nil {
			return "", err
		}
	}

	binPath, err := i.makeExecutable(binPath)
	if err != nil {
		return "", err
	}
	logutil.GetLogger(ctx).Debug("bw cli ready", zap.String("path", binPath))
	return binPath, nil
}

func (i *Installer) download(ctx context.Context, archivePath string) error {
	logutil.GetLogger(ctx).Info("downloading bw archive",
		zap.String("url", i.downloadURL),
		zap.String("dest", archivePath),
	)
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.downloadURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("download bw archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download bw archive: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".bw-download-*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write bw archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close bw archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), archivePath); err != nil {
		return fmt.Errorf("move bw archive: %w", err)
	}
	return nil
}

// extractBinary pulls the single `bw` member out of the release zip.
func extractBinary(archivePath, targetPath string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open bw archive: %w", err)
	}
	defer reader.Close()

	var member *zip.File
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if path.Base(file.Name) == binaryName {
			member = file
			break
		}
	}
	if member == nil {
		return fmt.Errorf("bw binary not found in archive %s", archivePath)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("create bin dir: %w", err)
	}
	src, err := member.Open()
	if err != nil {
		return fmt.Errorf("open archive member: %w", err)
	}
	defer src.Close()
	dst, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create bw binary: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extract bw binary: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close bw binary: %w", err)
	}
	return nil
}

// makeExecutable chmods the chosen binary. The defaults dir may live on a
// read-only mount, in which case the binary is copied into the runtime dir
// and made executable there.
func (i *Installer) makeExecutable(binPath string) (string, error) {
	err := os.Chmod(binPath, 0o755)
	if err == nil {
		return binPath, nil
	}
	runtime := i.runtimePath()
	if binPath == runtime || !errors.Is(err, os.ErrPermission) {
		return "", fmt.Errorf("chmod bw binary: %w", err)
	}
	if copyErr := copyFile(binPath, runtime); copyErr != nil {
		return "", copyErr
	}
	if chmodErr := os.Chmod(runtime, 0o755); chmodErr != nil {
		return "", fmt.Errorf("chmod runtime bw binary: %w", chmodErr)
	}
	return runtime, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create runtime bin dir: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open bw binary: %w", err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create runtime bw binary: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy bw binary: %w", err)
	}
	return out.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
