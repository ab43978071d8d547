package query

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/roads/lib/store/sqlstore"
	"github.com/ValentinKolb/roads/rpc/client"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/ValentinKolb/roads/rpc/server"
	"github.com/ValentinKolb/roads/rpc/transport/tcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer serves a store with one country on a random loopback port
func startServer(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	s, err := sqlstore.Open(sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "roads.db"), serializer.NewJSONSerializer())
	require.NoError(t, err)
	require.NoError(t, s.InitSchema(ctx))
	require.NoError(t, s.InsertCountry(ctx, "Alpha"))

	srv := server.NewServer(
		common.ServerConfig{Transport: "tcp", Endpoint: "127.0.0.1:0"},
		tcp.NewTCPServerTransport(),
		s,
		serializer.NewJSONSerializer(),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	addr := srv.Addr()
	require.NotEmpty(t, addr)

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return addr
}

func connect(t *testing.T, addr string) *client.RoadsClient {
	t.Helper()
	c, err := client.NewRoadsClient(
		common.ClientConfig{Transport: "tcp", Endpoint: addr, TimeoutSecond: 5},
		tcp.NewTCPClientTransport(),
		serializer.NewJSONSerializer(),
	)
	require.NoError(t, err)
	return c
}

func TestSendAll_StopsAfterFinish(t *testing.T) {
	addr := startServer(t)
	var out bytes.Buffer

	err := sendAll(connect(t, addr), []string{"get countries", "hello", "finish", "get countries"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "{\"1\":\"Alpha\"}\nunknown command\nfinish\n", out.String())
}

func TestSendAll_FinishesSession(t *testing.T) {
	addr := startServer(t)
	var out bytes.Buffer

	require.NoError(t, sendAll(connect(t, addr), []string{"get towns 1"}, &out))
	assert.Equal(t, "{}\n", out.String())
}

func TestReadLines(t *testing.T) {
	lines := readLines(strings.NewReader("get countries\r\n\nget roads 1\nfinish"))
	assert.Equal(t, []string{"get countries", "get roads 1", "finish"}, lines)
}

func TestShouldSkip(t *testing.T) {
	perfSkip = []string{"get-towns", "get-roads"}
	t.Cleanup(func() { perfSkip = nil })

	assert.True(t, shouldSkip("get-towns"))
	assert.False(t, shouldSkip("get-countries"))
}
