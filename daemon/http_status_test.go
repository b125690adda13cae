package daemon

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusDaemonReadyWithPIDFromStatus(t *testing.T) {
	handler := httphelpers.HandlerWithJSONResponse(map[string]interface{}{"pid": 4321, "name": "d"}, nil)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := NewHTTPStatusDaemon([]string{"/usr/sbin/d"}, server.URL)
		d.ReadyTimeout = time.Second

		assert.Equal(t, UnknownPID, d.PID())
		require.True(t, d.IsReady())
		assert.Equal(t, 4321, d.PID())
		assert.Equal(t, "d", d.Status().GetByKey("name").StringValue())
	})
}

func TestHTTPStatusDaemonFallsBackToPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644))

	httphelpers.WithServer(httphelpers.HandlerWithStatus(204), func(server *httptest.Server) {
		d := NewHTTPStatusDaemon([]string{"/usr/sbin/d"}, server.URL)
		d.PIDFile = path
		d.ReadyTimeout = time.Second

		require.True(t, d.IsReady())
		assert.Equal(t, os.Getpid(), d.PID())

		d.Cleanup()
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestHTTPStatusDaemonNotReadyOnErrorStatus(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(503))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := NewHTTPStatusDaemon([]string{"/usr/sbin/d"}, server.URL)
		d.ReadyTimeout = time.Millisecond * 100
		d.PollInterval = time.Millisecond * 20

		assert.False(t, d.IsReady())
		assert.Equal(t, UnknownPID, d.PID())
		assert.NotEmpty(t, requestsCh)
	})
}

func TestHTTPStatusDaemonBecomesReadyAfterRetries(t *testing.T) {
	handler := httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(http.StatusOK),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := NewHTTPStatusDaemon([]string{"/usr/sbin/d"}, server.URL)
		d.ReadyTimeout = time.Second * 5
		d.PollInterval = time.Millisecond * 10
		assert.True(t, d.IsReady())
	})
}

func TestHTTPStatusDaemonIgnoresStalePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.pid")
	require.NoError(t, os.WriteFile(path, []byte("4194000"), 0644))

	httphelpers.WithServer(httphelpers.HandlerWithStatus(204), func(server *httptest.Server) {
		d := NewHTTPStatusDaemon([]string{"/usr/sbin/d"}, server.URL)
		d.PIDFile = path
		d.ReadyTimeout = time.Second
		d.Alive = func(int) bool { return false }

		require.True(t, d.IsReady())
		assert.Equal(t, UnknownPID, d.PID())
	})
}
