package sound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// DefaultHookTimeout bounds a single cue script.
const DefaultHookTimeout = 5 * time.Second

// fallbackScript is run when no script exists for a severity.
const fallbackScript = "default"

// ErrTooManyPending is returned when the async limit is reached.
var ErrTooManyPending = errors.New("too many sound cues pending")

// HookOptions configures a HookAdvisor.
type HookOptions struct {
	// Dir holds executable scripts named after severities.
	Dir     string
	Timeout time.Duration
	// Async starts scripts in the background instead of waiting.
	Async bool
	// MaxPending caps concurrent async scripts.
	MaxPending int
	Logger     logging.Logger
}

// HookAdvisor plays cues by running {Dir}/<severity>, falling back to
// {Dir}/default. Missing scripts are not an error.
type HookAdvisor struct {
	dir        string
	timeout    time.Duration
	async      bool
	maxPending int
	log        logging.Logger

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// NewHookAdvisor returns a script-backed advisor.
func NewHookAdvisor(opts HookOptions) *HookAdvisor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultHookTimeout
	}
	if opts.MaxPending <= 0 {
		opts.MaxPending = 4
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &HookAdvisor{
		dir:        opts.Dir,
		timeout:    opts.Timeout,
		async:      opts.Async,
		maxPending: opts.MaxPending,
		log:        opts.Logger.With("component", "sound_hook"),
	}
}

// Cue runs the script for severity.
func (h *HookAdvisor) Cue(ctx context.Context, severity string) error {
	script := h.scriptFor(severity)
	if script == "" {
		return nil
	}
	if !h.async {
		return h.run(ctx, script, severity)
	}

	h.mu.Lock()
	if h.pending >= h.maxPending {
		h.mu.Unlock()
		return fmt.Errorf("%w (max %d), skipping %s", ErrTooManyPending, h.maxPending, filepath.Base(script))
	}
	h.pending++
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.pending--
			h.mu.Unlock()
			h.wg.Done()
		}()
		// The caller's context usually ends before the cue does.
		if err := h.run(context.WithoutCancel(ctx), script, severity); err != nil {
			h.log.Warn("async sound cue failed", "severity", severity, "error", err)
		}
	}()
	return nil
}

// Wait blocks until every async cue has finished.
func (h *HookAdvisor) Wait() {
	h.wg.Wait()
}

func (h *HookAdvisor) scriptFor(severity string) string {
	if h.dir == "" {
		return ""
	}
	for _, name := range []string{severity, fallbackScript} {
		if name == "" || name != filepath.Base(name) {
			continue
		}
		path := filepath.Join(h.dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.Mode()&0111 == 0 {
			continue
		}
		return path
	}
	return ""
}

func (h *HookAdvisor) run(ctx context.Context, script, severity string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = append(os.Environ(),
		"ALERTDECK_SEVERITY="+severity,
		"ALERTDECK_CUE_TIMESTAMP="+start.Format(time.RFC3339),
	)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	duration := time.Since(start)
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("sound script %s timed out after %s", filepath.Base(script), h.timeout)
	}
	if err != nil {
		return fmt.Errorf("sound script %s failed: %w, output: %s", filepath.Base(script), err, bytes.TrimSpace(output.Bytes()))
	}
	h.log.Debug("sound cue played", "severity", severity, "script", filepath.Base(script), "duration", duration)
	return nil
}
