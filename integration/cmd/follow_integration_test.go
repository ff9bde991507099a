//go:build integration
// +build integration

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/feed"
	"github.com/cristianoliveira/alertdeck/internal/httpapi"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/storage/sqlite"
)

// syncBuffer guards the follow output, which is written from producer
// goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openEngine(t *testing.T, path string) *engine.Engine {
	t.Helper()
	cache, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	e, err := engine.New(context.Background(), engine.Options{Cache: cache})
	require.NoError(t, err)
	return e
}

func TestFollowIntegration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "alertdeck.db")
	e := openEngine(t, dbPath)

	events, err := feed.DecodeAll(strings.NewReader(strings.Join([]string{
		`{"title":"Backup done","type":"success","source":"cron"}`,
		`{"kind":"alert","title":"Dam breach","risk_level":9.5,"location":"Valley","affected_areas":["east","west"],"actions":[{"label":"Evacuate"}]}`,
	}, "\n")))
	require.NoError(t, err)

	replayer := feed.NewReplayer(e, nil)
	replayer.Sleep = func(context.Context, time.Duration) error { return nil }

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		errChan <- app.NewFollowUseCase(e).Execute(ctx, app.FollowOptions{
			Output: &out,
			Ready:  func() { close(ready) },
		})
	}()

	<-ready
	ids, err := replayer.Replay(ctx, events)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	cancel()

	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Follow did not exit after cancellation")
	}

	output := out.String()
	assert.Contains(t, output, "Backup done")
	assert.Contains(t, output, "└─ from cron")
	assert.Contains(t, output, "risk 9.5 at Valley (east, west)")
	assert.Contains(t, output, "critical interrupt: Dam breach")

	require.NoError(t, e.Close())

	reopened := openEngine(t, dbPath)
	defer reopened.Close()
	items := reopened.List(query.Query{})
	require.Len(t, items, 2)
	assert.Equal(t, 2, reopened.UnreadCount())
}

func TestHTTPIntegration(t *testing.T) {
	e := openEngine(t, filepath.Join(t.TempDir(), "alertdeck.db"))
	defer e.Close()

	srv := httptest.NewServer(httpapi.NewServer(e, httpapi.Options{Tokens: []string{"s3cret"}}).Router())
	defer srv.Close()

	body := `{"title":"Wildfire","risk_level":7.2,"location":"Ridge"}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/alerts", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err = http.NewRequest(http.MethodPost, srv.URL+"/api/alerts", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	n, err := e.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wildfire", n.Title)
	assert.Equal(t, 7.2, n.RiskLevel())
}
