package errors

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
)

// recorder is a ColorOutput that keeps every line as "level: text".
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) add(level string, msgs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.lines = append(r.lines, level+": "+m)
	}
}

func (r *recorder) Error(msgs ...string)   { r.add("error", msgs) }
func (r *recorder) Warning(msgs ...string) { r.add("warning", msgs) }
func (r *recorder) Info(msgs ...string)    { r.add("info", msgs) }
func (r *recorder) Success(msgs ...string) { r.add("success", msgs) }

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestCLIHandlerForwards(t *testing.T) {
	out := &recorder{}
	h := NewCLIHandler(out)

	h.Error("cache write failed")
	h.Warning("2 events rejected")
	h.Info("Following notifications")
	h.Success("Alert n-1 added")

	assert.Equal(t, []string{
		"error: cache write failed",
		"warning: 2 events rejected",
		"info: Following notifications",
		"success: Alert n-1 added",
	}, out.Lines())
}

func TestCLIHandlerConcurrent(t *testing.T) {
	out := &recorder{}
	h := NewCLIHandler(out)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Error("boom")
		}()
	}
	wg.Wait()
	assert.Len(t, out.Lines(), 20)
}

func TestDefaultCLIHandlerPrintsToTerminal(t *testing.T) {
	h := NewDefaultCLIHandler()
	require.NotNil(t, h)
	assert.IsType(t, console{}, h.colors)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{
			"not found warns with hint",
			fmt.Errorf("lookup n-9: %w", domain.ErrNotificationNotFound),
			[]string{"warning: Not found: lookup n-9", "info: Run 'alertdeck list' to see notification ids"},
		},
		{
			"effect failure is an error without hint",
			fmt.Errorf("%w: speaker", engine.ErrEffectFailed),
			[]string{"error: Action failed: speaker"},
		},
		{
			"risk level hint",
			fmt.Errorf("%w: 11", domain.ErrInvalidRiskLevel),
			[]string{"error: Invalid risk level: 11", "info: Risk levels range from 0 to 10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &recorder{}
			Report(NewCLIHandler(out), tt.err)
			assert.Equal(t, tt.want, out.Lines())
		})
	}
}

func TestTUIHandlerStoresEachLevel(t *testing.T) {
	t0 := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	var seen []Message
	h := NewTUIHandler(func(m Message) { seen = append(seen, m) }).WithClock(func() time.Time { return t0 })

	h.Error("Action failed: Evacuate")
	h.Warning("No critical alert showing")
	h.Info("Toasts paused")
	h.Success("Marked 3 as read")

	all := h.GetAll()
	require.Len(t, all, 4)
	assert.Equal(t, seen, all)
	for i, typ := range []MessageType{MessageTypeError, MessageTypeWarning, MessageTypeInfo, MessageTypeSuccess} {
		assert.Equal(t, typ, all[i].Type)
		assert.Equal(t, t0, all[i].Timestamp)
	}

	latest, ok := h.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "Marked 3 as read", latest.Text)
}

func TestTUIHandlerGetAllReturnsCopy(t *testing.T) {
	h := NewTUIHandler(nil)
	h.Info("first")

	all := h.GetAll()
	all[0].Text = "changed"
	assert.Equal(t, "first", h.GetAll()[0].Text)
}

func TestTUIHandlerClear(t *testing.T) {
	h := NewTUIHandler(nil)
	_, ok := h.GetLatest()
	assert.False(t, ok)

	h.Error("a")
	h.Info("b")
	h.Clear()

	assert.Empty(t, h.GetAll())
	_, ok = h.GetLatest()
	assert.False(t, ok)
}

func TestTUIHandlerConcurrentAccess(t *testing.T) {
	h := NewTUIHandler(nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Info("tick")
			}
		}()
		go func() {
			defer wg.Done()
			_ = h.GetAll()
			_, _ = h.GetLatest()
		}()
	}
	wg.Wait()

	assert.Len(t, h.GetAll(), maxMessages)
}

func TestTUIHandlerHistoryIsBounded(t *testing.T) {
	h := NewTUIHandler(nil)
	for i := 0; i < maxMessages+5; i++ {
		h.Info(fmt.Sprintf("m-%d", i))
	}

	all := h.GetAll()
	require.Len(t, all, maxMessages)
	assert.Equal(t, "m-5", all[0].Text)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "error", MessageTypeError.String())
	assert.Equal(t, "warning", MessageTypeWarning.String())
	assert.Equal(t, "success", MessageTypeSuccess.String())
	assert.Equal(t, "unknown", MessageType(42).String())
}
