package bw

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Locator resolves the bw binary before every invocation. The installer
// satisfies this; tests plug in a stub.
type Locator interface {
	EnsureCLI(ctx context.Context) (string, error)
}

// Result mirrors what the frontend panel expects from a CLI invocation.
// A non-zero exit is a normal outcome, not a Go error.
type Result struct {
	Success    bool   `json:"success"`
	ReturnCode int    `json:"returncode"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

// RunOptions carries the global bw switches shared by every subcommand.
type RunOptions struct {
	Session       string
	Input         *string
	ExtraEnv      map[string]string
	Pretty        bool
	Raw           bool
	Response      bool
	Quiet         bool
	NoInteraction bool
}

type Runner struct {
	locator Locator
}

func NewRunner(locator Locator) *Runner {
	return &Runner{locator: locator}
}

// Run executes the bw binary with args plus the switches from opts.
// Switch order is fixed: args, --session, --pretty, --raw, --response,
// --quiet, --nointeraction.
func (r *Runner) Run(ctx context.Context, args []string, opts RunOptions) (*Result, error) {
	binPath, err := r.locator.EnsureCLI(ctx)
	if err != nil {
		return nil, err
	}

	cmdArgs := make([]string, 0, len(args)+8)
	cmdArgs = append(cmdArgs, args...)
	if opts.Session != "" {
		cmdArgs = append(cmdArgs, "--session", opts.Session)
	}
	if opts.Pretty {
		cmdArgs = append(cmdArgs, "--pretty")
	}
	if opts.Raw {
		cmdArgs = append(cmdArgs, "--raw")
	}
	if opts.Response {
		cmdArgs = append(cmdArgs, "--response")
	}
	if opts.Quiet {
		cmdArgs = append(cmdArgs, "--quiet")
	}
	if opts.NoInteraction {
		cmdArgs = append(cmdArgs, "--nointeraction")
	}

	cmd := exec.CommandContext(ctx, binPath, cmdArgs...)
	if opts.Input != nil {
		cmd.Stdin = strings.NewReader(*opts.Input)
	}
	if len(opts.ExtraEnv) > 0 {
		env := os.Environ()
		for key, value := range opts.ExtraEnv {
			env = append(env, key+"="+value)
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logutil.GetLogger(ctx).Debug("running bw", zap.String("command", redactArgs(cmdArgs)))
	runErr := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if runErr == nil {
		result.Success = true
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ReturnCode = exitErr.ExitCode()
		return result, nil
	}
	return nil, fmt.Errorf("run bw: %w", runErr)
}

// redactArgs keeps secrets out of the debug log. Login carries the master
// password as a positional, so everything after the verb is masked there;
// elsewhere only values of known-sensitive flags are.
func redactArgs(args []string) string {
	if len(args) > 1 && args[0] == "login" {
		return "login ***"
	}
	sensitiveFlag := map[string]struct{}{
		"--session":  {},
		"--password": {},
		"--code":     {},
		"--hidden":   {},
	}
	masked := make([]string, len(args))
	copy(masked, args)
	for idx := 0; idx < len(masked); idx++ {
		if _, ok := sensitiveFlag[masked[idx]]; ok && idx+1 < len(masked) {
			masked[idx+1] = "***"
			idx++
		}
	}
	return strings.Join(masked, " ")
}
