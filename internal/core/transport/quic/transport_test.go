package quic

import (
	"context"
	"io"
	"testing"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

func newTestTransport(t *testing.T) *Transport {
	t.Helper()
	tr, err := New(DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestTransport_AddressShapes(t *testing.T) {
	tr := newTestTransport(t)

	for _, s := range []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip4/127.0.0.1/udp/4001",
		"/memory/5",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := tr.Dial(ma.StringCast(s))
			assert.ErrorIs(t, err, types.ErrAddressNotSupported)
			_, err = tr.Listen(ma.StringCast(s))
			assert.ErrorIs(t, err, types.ErrAddressNotSupported)
		})
	}
}

func TestTransport_DialListen(t *testing.T) {
	tr := newTestTransport(t)

	l, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/udp/0/quic-v1"))
	require.NoError(t, err)
	defer l.Close()
	assert.True(t, swarmma.IsQUIC(l.Multiaddr()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fut, err := tr.Dial(l.Multiaddr())
	require.NoError(t, err)

	client, err := fut.Await(ctx)
	require.NoError(t, err)
	defer client.Close()

	// 对端在收到数据后才能看到流
	_, err = client.Write([]byte("hello"))
	require.NoError(t, err)

	server, err := l.Accept(ctx)
	require.NoError(t, err)
	defer server.Close()

	buf := make([]byte, 5)
	_, err = io.ReadFull(server, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	_, err = server.Write([]byte("world"))
	require.NoError(t, err)
	_, err = io.ReadFull(client, buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf))

	assert.True(t, swarmma.IsQUIC(client.RemoteMultiaddr()))
}

func TestListener_Close(t *testing.T) {
	tr := newTestTransport(t)

	l, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/udp/0/quic-v1"))
	require.NoError(t, err)

	require.NoError(t, l.Close())
	_ = l.Close()

	_, err = l.Accept(context.Background())
	assert.ErrorIs(t, err, types.ErrListenerClosed)
}

// TestListener_SocketFailure 底层 UDP socket 失效后 Accept 立即返回传输错误
func TestListener_SocketFailure(t *testing.T) {
	tr := newTestTransport(t)

	l, err := tr.Listen(ma.StringCast("/ip4/127.0.0.1/udp/0/quic-v1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	ql, ok := l.(*Listener)
	require.True(t, ok)
	require.NoError(t, ql.tr.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = l.Accept(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)

	var te *types.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "accept", te.Op)

	// 失败状态保持，后续调用同样返回
	_, err = l.Accept(ctx)
	assert.ErrorAs(t, err, &te)
}

func TestTransport_Closed(t *testing.T) {
	tr, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	_, err = tr.Listen(ma.StringCast("/ip4/127.0.0.1/udp/0/quic-v1"))
	assert.ErrorIs(t, err, ErrTransportClosed)

	fut, err := tr.Dial(ma.StringCast("/ip4/127.0.0.1/udp/1/quic-v1"))
	require.NoError(t, err)
	_, err = fut.Await(context.Background())
	assert.ErrorIs(t, err, ErrTransportClosed)
}
