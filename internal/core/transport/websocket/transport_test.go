package websocket

import (
	"context"
	"io"
	"testing"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

func dialPair(t *testing.T, tr *Transport) (client, server *Conn, l interface{ Close() error }) {
	t.Helper()

	ln, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	require.True(t, swarmma.IsWebSocket(ln.Multiaddr()))

	fut, err := tr.Dial(ln.Multiaddr())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		server, err = ln.Accept(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		client, err = fut.Await(gctx)
		return err
	})
	require.NoError(t, g.Wait())
	return client, server, ln
}

func TestTransport_AddressShapes(t *testing.T) {
	tr := New(DefaultConfig())

	_, err := tr.Dial(ma.StringCast("/ip4/127.0.0.1/tcp/4001"))
	assert.ErrorIs(t, err, types.ErrAddressNotSupported)

	_, err = tr.Listen(ma.StringCast("/memory/3"))
	assert.ErrorIs(t, err, types.ErrAddressNotSupported)
}

func TestTransport_ByteStream(t *testing.T) {
	client, server, l := dialPair(t, New(DefaultConfig()))
	defer l.Close()
	defer client.Close()
	defer server.Close()

	// 两次写入在对端表现为连续字节流
	go func() {
		_, _ = client.Write([]byte("hel"))
		_, _ = client.Write([]byte("lo"))
	}()

	buf := make([]byte, 5)
	_, err := io.ReadFull(server, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	assert.NotNil(t, client.RemoteMultiaddr())
	assert.NoError(t, server.SetDeadline(time.Now().Add(time.Second)))
}

func TestConn_CloseYieldsEOF(t *testing.T) {
	client, server, l := dialPair(t, New(DefaultConfig()))
	defer l.Close()
	defer server.Close()

	require.NoError(t, client.Close())
	require.NoError(t, client.Close(), "重复关闭应安全")

	_, err := server.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestListener_Close(t *testing.T) {
	tr := New(DefaultConfig())

	l, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	_, err = l.Accept(context.Background())
	assert.ErrorIs(t, err, types.ErrListenerClosed)

	fut, err := tr.Dial(l.Multiaddr())
	require.NoError(t, err)
	_, err = fut.Await(context.Background())
	assert.Error(t, err)
}

// TestListener_SocketFailure 底层 TCP 监听失效后 Accept 立即返回传输错误
func TestListener_SocketFailure(t *testing.T) {
	tr := New(DefaultConfig())

	l, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	wl, ok := l.(*Listener)
	require.True(t, ok)
	require.NoError(t, wl.nl.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = l.Accept(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, types.ErrListenerClosed)

	var te *types.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "accept", te.Op)

	// 之后的 Close 正常返回，Accept 改报已关闭
	require.NoError(t, l.Close())
	_, err = l.Accept(ctx)
	assert.ErrorIs(t, err, types.ErrListenerClosed)
}
