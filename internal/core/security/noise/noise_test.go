package noise

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-swarm/pkg/types"
)

// handshakePair 在 net.Pipe 两端执行握手
func handshakePair(t *testing.T, client, server *Upgrade[net.Conn]) (*Conn, *Conn) {
	t.Helper()

	a, b := net.Pipe()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cc, sc *Conn
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cc, err = client.Upgrade(gctx, a, ProtocolID, types.DirOutbound)
		return err
	})
	g.Go(func() error {
		var err error
		sc, err = server.Upgrade(gctx, b, ProtocolID, types.DirInbound)
		return err
	})
	require.NoError(t, g.Wait())

	t.Cleanup(func() {
		cc.Close()
		sc.Close()
	})
	return cc, sc
}

func newUpgrade(t *testing.T) *Upgrade[net.Conn] {
	t.Helper()
	u, err := New[net.Conn](DefaultConfig())
	require.NoError(t, err)
	return u
}

// ============================================================================
//                              握手
// ============================================================================

func TestUpgrade_Protocols(t *testing.T) {
	u := newUpgrade(t)
	protos := u.Protocols()
	require.Len(t, protos, 1)
	assert.Equal(t, ProtocolID, protos[0].Name)
	assert.Equal(t, ProtocolID, protos[0].ID)
}

func TestUpgrade_Handshake(t *testing.T) {
	client, server := newUpgrade(t), newUpgrade(t)
	cc, sc := handshakePair(t, client, server)

	assert.Equal(t, client.LocalStatic(), sc.RemoteStatic(), "响应者应看到发起者的静态公钥")
	assert.Equal(t, server.LocalStatic(), cc.RemoteStatic(), "发起者应看到响应者的静态公钥")
	assert.Equal(t, client.LocalStatic(), cc.LocalStatic())

	go func() { _, _ = cc.Write([]byte("hello noise")) }()
	buf := make([]byte, 11)
	_, err := io.ReadFull(sc, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello noise", string(buf))

	go func() { _, _ = sc.Write([]byte("pong")) }()
	buf = make([]byte, 4)
	_, err = io.ReadFull(cc, buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf))
}

func TestConn_LargeWrite(t *testing.T) {
	cc, sc := handshakePair(t, newUpgrade(t), newUpgrade(t))

	data := make([]byte, 3*maxPlaintext+123)
	_, err := rand.Read(data)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		n, err := cc.Write(data)
		if err == nil && n != len(data) {
			err = io.ErrShortWrite
		}
		errCh <- err
	}()

	got := make([]byte, len(data))
	_, err = io.ReadFull(sc, got)
	require.NoError(t, err)
	require.NoError(t, <-errCh)
	assert.True(t, bytes.Equal(data, got))
}

func TestConn_Addresses(t *testing.T) {
	cc, sc := handshakePair(t, newUpgrade(t), newUpgrade(t))

	assert.Equal(t, "pipe", cc.LocalAddr().Network())
	assert.Equal(t, "pipe", sc.RemoteAddr().Network())
	require.NoError(t, cc.SetDeadline(time.Now().Add(time.Second)))

	_, ok := cc.Unwrap().(net.Conn)
	assert.True(t, ok)
}

// ============================================================================
//                              静态密钥
// ============================================================================

func TestNew_StaticKey(t *testing.T) {
	priv := make([]byte, 32)
	_, err := rand.Read(priv)
	require.NoError(t, err)

	u1, err := New[net.Conn](Config{StaticKey: priv})
	require.NoError(t, err)
	u2, err := New[net.Conn](Config{StaticKey: priv})
	require.NoError(t, err)
	assert.Equal(t, u1.LocalStatic(), u2.LocalStatic(), "同一私钥应派生同一公钥")
	assert.Len(t, u1.LocalStatic(), 32)

	_, err = New[net.Conn](Config{StaticKey: []byte{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidStaticKey)
}

// ============================================================================
//                              失败与取消
// ============================================================================

func TestUpgrade_Canceled(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	// 对端不响应，取消后握手中断并关闭连接
	_, err := newUpgrade(t).Upgrade(ctx, a, ProtocolID, types.DirOutbound)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = a.Write([]byte("x"))
	assert.ErrorIs(t, err, io.ErrClosedPipe, "原始连接应已关闭")
}

func TestUpgrade_GarbagePeer(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	go func() {
		// 合法长度前缀，非法内容
		_, _ = b.Write([]byte{0, 4, 'j', 'u', 'n', 'k'})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := newUpgrade(t).Upgrade(ctx, a, ProtocolID, types.DirInbound)
	assert.ErrorIs(t, err, ErrInvalidHandshake)
}
