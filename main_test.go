package main

import (
	"bytes"
	"net"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"cookieserve/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

// defaultPortFree skips the test when something else already holds port 8000.
func defaultPortFree(t *testing.T) {
	t.Helper()
	ln, err := net.Listen("tcp", ":8000")
	if err != nil {
		t.Skipf("port 8000 unavailable: %v", err)
	}
	ln.Close()
}

func TestBanner(t *testing.T) {
	cfg, err := config.New(t.TempDir(), config.DefaultPort)
	require.NoError(t, err)

	var buf bytes.Buffer
	printBanner(&buf, cfg)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "🍪 Cookiebot Test Server running at http://localhost:8000", lines[0])
	assert.Equal(t, "📄 Test page: http://localhost:8000/test-cookiebot.html", lines[1])
	assert.Equal(t, "Press Ctrl+C to stop the server", lines[2])
}

func TestFarewell(t *testing.T) {
	var buf bytes.Buffer
	printFarewell(&buf)
	assert.Equal(t, "\n👋 Server stopped\n", buf.String())
}

func TestRunFailsWhenPortTaken(t *testing.T) {
	defaultPortFree(t)

	ln, err := net.Listen("tcp", ":8000")
	require.NoError(t, err)
	defer ln.Close()

	var out syncBuffer
	assert.Equal(t, 1, run(&out))
	assert.NotContains(t, out.String(), "Cookiebot Test Server")
}

func TestRunStopsOnInterrupt(t *testing.T) {
	defaultPortFree(t)

	var out syncBuffer
	code := make(chan int, 1)
	go func() { code <- run(&out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Press Ctrl+C")
	}, 5*time.Second, 10*time.Millisecond)

	self, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, self.Signal(os.Interrupt))

	select {
	case c := <-code:
		assert.Equal(t, 0, c)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop on interrupt")
	}
	assert.Contains(t, out.String(), "👋 Server stopped")

	ln, err := net.Listen("tcp", ":8000")
	require.NoError(t, err)
	ln.Close()
}
