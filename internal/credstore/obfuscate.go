package credstore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Stored values carry a format prefix so Decode picks the right reverse
// step: "o1:" for the openssl path, "b1:" for the base64 fallback.
// This is reversible obfuscation against casual file browsing, not
// encryption at rest.
const (
	opensslPrefix = "o1:"
	base64Prefix  = "b1:"

	opensslTimeout = 10 * time.Second
	keyFileName    = "local.key"
)

type Obfuscator struct {
	dir         string
	opensslPath string
}

func NewObfuscator(dir string) *Obfuscator {
	return &Obfuscator{dir: dir, opensslPath: "openssl"}
}

// keyFile returns the machine-local key, creating it on first use.
func (o *Obfuscator) keyFile() (string, error) {
	path := filepath.Join(o.dir, keyFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(o.dir, 0o700); err != nil {
		return "", fmt.Errorf("create credential dir: %w", err)
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(raw)), 0o600); err != nil {
		return "", fmt.Errorf("write key file: %w", err)
	}
	return path, nil
}

func (o *Obfuscator) Encode(ctx context.Context, plain string) string {
	encoded, err := o.runOpenSSL(ctx, plain, false)
	if err == nil {
		return opensslPrefix + encoded
	}
	logutil.GetLogger(ctx).Warn("openssl unavailable, falling back to base64", zap.Error(err))
	return base64Prefix + base64.StdEncoding.EncodeToString([]byte(plain))
}

func (o *Obfuscator) Decode(ctx context.Context, stored string) (string, error) {
	switch {
	case strings.HasPrefix(stored, opensslPrefix):
		return o.runOpenSSL(ctx, strings.TrimPrefix(stored, opensslPrefix), true)
	case strings.HasPrefix(stored, base64Prefix):
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, base64Prefix))
		if err != nil {
			return "", fmt.Errorf("decode stored value: %w", err)
		}
		return string(raw), nil
	default:
		// files written before the prefix existed were plain base64
		raw, err := base64.StdEncoding.DecodeString(stored)
		if err != nil {
			return "", fmt.Errorf("decode legacy stored value: %w", err)
		}
		return string(raw), nil
	}
}

func (o *Obfuscator) runOpenSSL(ctx context.Context, input string, decrypt bool) (string, error) {
	keyPath, err := o.keyFile()
	if err != nil {
		return "", err
	}
	args := []string{"enc", "-aes-256-cbc", "-pbkdf2", "-base64", "-A", "-pass", "file:" + keyPath}
	if decrypt {
		args = append(args, "-d")
	}

	cmdCtx, cancel := context.WithTimeout(ctx, opensslTimeout)
	defer cancel()
	cmd := exec.CommandContext(cmdCtx, o.opensslPath, args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("openssl: %w", err)
		}
		return "", fmt.Errorf("openssl: %w: %s", err, detail)
	}
	return strings.TrimSpace(stdout.String()), nil
}
