package quic

import (
	"net"
	"sync"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/quic-go/quic-go"
	"go.uber.org/multierr"

	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
)

// Conn 一个 QUIC 连接上的单条双向流
type Conn struct {
	conn   quic.Connection
	stream quic.Stream

	closeOnce sync.Once
	closeErr  error
}

var _ net.Conn = (*Conn)(nil)

func newConn(conn quic.Connection, stream quic.Stream) *Conn {
	return &Conn{conn: conn, stream: stream}
}

func (c *Conn) Read(p []byte) (int, error) {
	return c.stream.Read(p)
}

func (c *Conn) Write(p []byte) (int, error) {
	return c.stream.Write(p)
}

// Close 关闭流和整个 QUIC 连接
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.stream.CancelRead(0)
		c.closeErr = multierr.Combine(
			c.stream.Close(),
			c.conn.CloseWithError(0, ""),
		)
	})
	return c.closeErr
}

// LocalAddr 本地 UDP 地址
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr 远端 UDP 地址
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// LocalMultiaddr 本地多地址
func (c *Conn) LocalMultiaddr() ma.Multiaddr {
	return swarmma.MustFromNetAddr(c.conn.LocalAddr(), swarmma.QUICV1)
}

// RemoteMultiaddr 远端多地址
func (c *Conn) RemoteMultiaddr() ma.Multiaddr {
	return swarmma.MustFromNetAddr(c.conn.RemoteAddr(), swarmma.QUICV1)
}

// SetDeadline 设置流的读写截止时间
func (c *Conn) SetDeadline(t time.Time) error {
	return c.stream.SetDeadline(t)
}

// SetReadDeadline 设置读截止时间
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.stream.SetReadDeadline(t)
}

// SetWriteDeadline 设置写截止时间
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.stream.SetWriteDeadline(t)
}

// Connection 返回底层 QUIC 连接
func (c *Conn) Connection() quic.Connection {
	return c.conn
}
