package colors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.lines = append(r.lines, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.lines = append(r.lines, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.lines = append(r.lines, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.lines = append(r.lines, "error:"+msg) }

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return &out, &errOut
}

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name     string
		print    func(...string)
		toStderr bool
		want     []string
	}{
		{name: "error", print: Error, toStderr: true, want: []string{"Error:", "something went wrong", Red}},
		{name: "warning", print: Warning, toStderr: true, want: []string{"Warning:", "something went wrong", Yellow}},
		{name: "success", print: Success, want: []string{checkmark, "something went wrong", Green}},
		{name: "info", print: Info, want: []string{"something went wrong", Blue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := capture(t)
			tt.print("something", "went wrong")

			got, other := out.String(), errOut.String()
			if tt.toStderr {
				got, other = other, got
			}
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			assert.Empty(t, other)
		})
	}
}

func TestDebugIsGated(t *testing.T) {
	_, errOut := capture(t)
	SetDebug(false)
	t.Cleanup(func() { SetDebug(false) })

	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "shown")
}

func TestMirrorsToLogger(t *testing.T) {
	capture(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	Error("e")
	Warning("w")
	Success("s")
	Info("i")

	require.Equal(t, []string{"error:e", "warn:w", "info:s", "info:i"}, rec.lines)
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "plain", Paint("", "plain"))
	assert.Equal(t, Red+"x"+Reset, Paint(ForType("error"), "x"))
	assert.Equal(t, Magenta+"x"+Reset, Paint(ForPriority("critical"), "x"))
	assert.Equal(t, "", ForPriority("low"))
}
