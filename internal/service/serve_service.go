package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/config"
	appErr "github.com/deckbw/bwbridge/internal/pkg/errors"
)

// startGrace is how long Start waits to catch a child that exits
// immediately (bad port, vault not configured).
const startGrace = 500 * time.Millisecond

// ServeService manages the `bw serve` local REST API as a child process
// and proxies panel requests to it. One child at most.
type ServeService struct {
	locator  bw.Locator
	defaults config.ServeConfig
	client   *http.Client

	mu   sync.Mutex
	proc *serveProc
}

type serveProc struct {
	cmd      *exec.Cmd
	port     int
	hostname string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	done     chan struct{}
}

func NewServeService(locator bw.Locator, defaults config.ServeConfig) *ServeService {
	return &ServeService{
		locator:  locator,
		defaults: defaults,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type ServeStartInput struct {
	Port                    int    `json:"port"`
	Hostname                string `json:"hostname"`
	DisableOriginProtection *bool  `json:"disable_origin_protection"`
}

type ServeState struct {
	Running                 bool   `json:"running"`
	AlreadyRunning          bool   `json:"already_running,omitempty"`
	PID                     int    `json:"pid,omitempty"`
	Port                    int    `json:"port,omitempty"`
	Hostname                string `json:"hostname,omitempty"`
	DisableOriginProtection bool   `json:"disable_origin_protection,omitempty"`
}

func (s *ServeService) Start(ctx context.Context, in ServeStartInput) (*ServeState, error) {
	port := in.Port
	if port == 0 {
		port = s.defaults.Port
	}
	if port <= 0 {
		return nil, fmt.Errorf("%w: port must be a positive integer", appErr.ErrInvalid)
	}
	hostname := in.Hostname
	if hostname == "" {
		hostname = s.defaults.Hostname
	}
	disableOrigin := s.defaults.DisableOriginProtection
	if in.DisableOriginProtection != nil {
		disableOrigin = *in.DisableOriginProtection
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc != nil {
		select {
		case <-s.proc.done:
			s.proc = nil
		default:
			return &ServeState{
				Running:        true,
				AlreadyRunning: true,
				PID:            s.proc.cmd.Process.Pid,
				Port:           s.proc.port,
				Hostname:       s.proc.hostname,
			}, nil
		}
	}

	binPath, err := s.locator.EnsureCLI(ctx)
	if err != nil {
		return nil, err
	}
	args := []string{"serve", "--port", strconv.Itoa(port), "--hostname", hostname}
	if disableOrigin {
		args = append(args, "--disable-origin-protection")
	}

	// deliberately not CommandContext: the child outlives the request
	proc := &serveProc{port: port, hostname: hostname, done: make(chan struct{})}
	proc.cmd = exec.Command(binPath, args...)
	proc.cmd.Stdout = &proc.stdout
	proc.cmd.Stderr = &proc.stderr
	if err := proc.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start bw serve: %w", err)
	}
	go func() {
		_ = proc.cmd.Wait()
		close(proc.done)
	}()

	select {
	case <-proc.done:
		detail := strings.TrimSpace(proc.stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(proc.stdout.String())
		}
		if detail == "" {
			detail = "bw serve exited early"
		}
		return nil, fmt.Errorf("%w: %s", appErr.ErrServeFailed, detail)
	case <-time.After(startGrace):
	}

	s.proc = proc
	logutil.GetLogger(ctx).Info("bw serve started",
		zap.Int("pid", proc.cmd.Process.Pid),
		zap.String("hostname", hostname),
		zap.Int("port", port),
	)
	return &ServeState{
		Running:                 true,
		PID:                     proc.cmd.Process.Pid,
		Port:                    port,
		Hostname:                hostname,
		DisableOriginProtection: disableOrigin,
	}, nil
}

func (s *ServeService) Status() *ServeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return &ServeState{}
	}
	select {
	case <-s.proc.done:
		return &ServeState{}
	default:
		return &ServeState{
			Running:  true,
			PID:      s.proc.cmd.Process.Pid,
			Port:     s.proc.port,
			Hostname: s.proc.hostname,
		}
	}
}

// Stop terminates the child, escalating from SIGTERM to SIGKILL.
func (s *ServeService) Stop(ctx context.Context) (*ServeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return &ServeState{}, nil
	}
	proc := s.proc
	s.proc = nil

	select {
	case <-proc.done:
		return &ServeState{}, nil
	default:
	}
	_ = proc.cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-proc.done:
	case <-time.After(3 * time.Second):
		_ = proc.cmd.Process.Kill()
		<-proc.done
	}
	logutil.GetLogger(ctx).Info("bw serve stopped", zap.Int("pid", proc.cmd.Process.Pid))
	return &ServeState{}, nil
}

type ProxyInput struct {
	Method   string `json:"method"`
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	Path     string `json:"path"`
	Body     string `json:"body"`
}

type ProxyOutput struct {
	Success    bool   `json:"success"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Body       string `json:"body"`
	URL        string `json:"url"`
}

// Proxy forwards one JSON request to the bw serve REST API. It is
// independent of the managed child on purpose: the panel may talk to a
// serve instance it started some other way.
func (s *ServeService) Proxy(ctx context.Context, in ProxyInput) (*ProxyOutput, error) {
	port := in.Port
	if port == 0 {
		port = s.defaults.Port
	}
	if port <= 0 {
		return nil, fmt.Errorf("%w: port must be a positive integer", appErr.ErrInvalid)
	}
	hostname := in.Hostname
	if hostname == "" {
		hostname = s.defaults.Hostname
	}
	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := in.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := fmt.Sprintf("http://%s:%d%s", hostname, port, path)

	var body io.Reader
	hasBody := strings.TrimSpace(in.Body) != ""
	if hasBody {
		body = strings.NewReader(in.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build proxy request: %w", err)
	}
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy to bw serve: %w", err)
	}
	defer resp.Body.Close()
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bw serve response: %w", err)
	}
	return &ProxyOutput{
		Success:    resp.StatusCode < http.StatusBadRequest,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       string(text),
		URL:        url,
	}, nil
}
