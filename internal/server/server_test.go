package server

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Legacy-Engineers/medusa/internal/config"
	"github.com/Legacy-Engineers/medusa/internal/logger"
	"github.com/Legacy-Engineers/medusa/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs a server on an ephemeral port and returns its address.
func startTestServer(t *testing.T) string {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.MaxConnections = 10
	cfg.Server.EnableTimeouts = false
	cfg.Log.Level = "error"

	log := logger.New("error", "console")
	engine := NewEngine(store.NewStore(), log)
	srv := NewServer(engine, cfg, log)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() {
		listener.Close() //nolint:errcheck
		srv.Wait()
	})

	go srv.Serve(listener) //nolint:errcheck

	return listener.Addr().String()
}

type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialTestServer(t *testing.T, addr string) *testClient {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() }) //nolint:errcheck

	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	c := &testClient{conn: conn, reader: bufio.NewReader(conn)}

	// The welcome banner ends with a blank line.
	for {
		line, err := c.reader.ReadString('\n')
		require.NoError(t, err)
		if line == "\n" {
			break
		}
	}

	return c
}

func (c *testClient) send(t *testing.T, cmd string) string {
	t.Helper()

	_, err := fmt.Fprintf(c.conn, "%s\n", cmd)
	require.NoError(t, err)

	line, err := c.reader.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(line, "\n")
}

func TestServerBasicOperations(t *testing.T) {
	addr := startTestServer(t)
	c := dialTestServer(t, addr)

	res := c.send(t, "SET test_key test_value")
	assert.Contains(t, res, "OK")

	res = c.send(t, "GET test_key")
	assert.Contains(t, res, "test_value")

	res = c.send(t, "DELETE test_key")
	assert.Contains(t, res, "OK")

	res = c.send(t, "GET test_key")
	assert.Contains(t, res, "NULL")
}

func TestServerTTLOperations(t *testing.T) {
	addr := startTestServer(t)
	c := dialTestServer(t, addr)

	res := c.send(t, "SET ttl_key ttl_value 1")
	assert.Contains(t, res, "OK")

	res = c.send(t, "TTL ttl_key")
	assert.Contains(t, res, "expires in")

	time.Sleep(1100 * time.Millisecond)

	res = c.send(t, "GET ttl_key")
	assert.Contains(t, res, "NULL")
}

func TestServerPatternMatching(t *testing.T) {
	addr := startTestServer(t)
	c := dialTestServer(t, addr)

	c.send(t, "SET user:1 john")
	c.send(t, "SET user:2 jane")
	c.send(t, "SET product:1 laptop")

	res := c.send(t, "KEYS user:*")
	assert.Contains(t, res, "user:1")
	assert.Contains(t, res, "user:2")
	assert.NotContains(t, res, "product:1")
}

func TestServerQuit(t *testing.T) {
	addr := startTestServer(t)
	c := dialTestServer(t, addr)

	res := c.send(t, "QUIT")
	assert.Equal(t, "OK: Goodbye!", res)

	// The server closes the connection after QUIT.
	_, err := c.reader.ReadString('\n')
	assert.Error(t, err)
}

func TestServerConnectionResilience(t *testing.T) {
	addr := startTestServer(t)

	// First connection sets a value and disconnects abruptly.
	c1 := dialTestServer(t, addr)
	res := c1.send(t, "SET test value")
	require.Contains(t, res, "OK")
	c1.conn.Close() //nolint:errcheck

	// A second connection still sees the data.
	c2 := dialTestServer(t, addr)
	res = c2.send(t, "GET test")
	assert.Contains(t, res, "value")
}

func TestServerConcurrentConnections(t *testing.T) {
	addr := startTestServer(t)

	const clients = 5

	var wg sync.WaitGroup
	wg.Add(clients)

	for i := 0; i < clients; i++ {
		go func(id int) {
			defer wg.Done()

			c := dialTestServer(t, addr)
			key := fmt.Sprintf("concurrent_key_%d", id)
			val := fmt.Sprintf("value_%d", id)

			res := c.send(t, fmt.Sprintf("SET %s %s", key, val))
			assert.Contains(t, res, "OK")

			res = c.send(t, fmt.Sprintf("GET %s", key))
			assert.Contains(t, res, val)
		}(i)
	}

	wg.Wait()

	c := dialTestServer(t, addr)
	res := c.send(t, "COUNT")
	assert.Equal(t, fmt.Sprintf("OK: %d entries", clients), res)
}
