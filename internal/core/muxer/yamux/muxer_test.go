package yamux

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-swarm/pkg/types"
)

// createMuxerPair 在 net.Pipe 上创建一对 Muxer（服务端和客户端）
func createMuxerPair(t *testing.T) (server, client *Muxer) {
	t.Helper()

	a, b := net.Pipe()
	u := New[net.Conn](DefaultConfig())

	var err error
	client, err = u.Upgrade(context.Background(), a, ProtocolID, types.DirOutbound)
	require.NoError(t, err)
	server, err = u.Upgrade(context.Background(), b, ProtocolID, types.DirInbound)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return server, client
}

func TestUpgrade_Protocols(t *testing.T) {
	protos := New[net.Conn](DefaultConfig()).Protocols()
	require.Len(t, protos, 1)
	assert.Equal(t, ProtocolID, protos[0].Name)
}

func TestNewMuxer(t *testing.T) {
	server, client := createMuxerPair(t)

	assert.True(t, server.IsServer())
	assert.False(t, client.IsServer())
	assert.False(t, server.IsClosed())
	assert.False(t, client.IsClosed())
	assert.Equal(t, 0, server.NumStreams())
	assert.NotNil(t, client.Session())
}

func TestMuxer_OpenAcceptStream(t *testing.T) {
	server, client := createMuxerPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var in, out net.Conn
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in, err = server.AcceptStream(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out, err = client.OpenStream(gctx)
		if err != nil {
			return err
		}
		_, err = out.Write([]byte("hello"))
		return err
	})
	require.NoError(t, g.Wait())
	defer in.Close()
	defer out.Close()

	buf := make([]byte, 5)
	_, err := io.ReadFull(in, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	assert.Equal(t, 1, client.NumStreams())
}

func TestMuxer_AcceptCanceled(t *testing.T) {
	server, _ := createMuxerPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := server.AcceptStream(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMuxer_Close(t *testing.T) {
	server, client := createMuxerPair(t)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close(), "重复关闭应安全")
	assert.True(t, client.IsClosed())

	_, err := client.OpenStream(context.Background())
	assert.ErrorIs(t, err, ErrMuxerClosed)

	// 对端随后感知关闭
	assert.Eventually(t, server.IsClosed, 2*time.Second, 10*time.Millisecond)
}

func TestMuxer_Ping(t *testing.T) {
	_, client := createMuxerPair(t)

	rtt, err := client.Ping()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rtt, time.Duration(0))
}

func TestConfig_Fallbacks(t *testing.T) {
	yc := Config{MaxStreamWindowSize: 1}.yamuxConfig()
	assert.Equal(t, io.Discard, yc.LogOutput)
	assert.GreaterOrEqual(t, yc.MaxStreamWindowSize, uint32(256*1024))
	assert.Positive(t, yc.AcceptBacklog)
	assert.False(t, yc.EnableKeepAlive)
}
