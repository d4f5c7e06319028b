package websocket

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/multierr"

	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
)

// closeGracePeriod 发送关闭帧的写超时
const closeGracePeriod = 100 * time.Millisecond

// Conn 把 WebSocket 连接适配为 net.Conn
type Conn struct {
	ws *ws.Conn

	readMu sync.Mutex
	reader io.Reader

	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

var _ net.Conn = (*Conn)(nil)

func newConn(c *ws.Conn) *Conn {
	return &Conn{ws: c}
}

// Read 读取二进制消息内容，跨消息边界拼接
func (c *Conn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	for {
		if c.reader == nil {
			mt, r, err := c.ws.NextReader()
			if err != nil {
				return 0, mapCloseError(err)
			}
			if mt != ws.BinaryMessage {
				continue
			}
			c.reader = r
		}

		n, err := c.reader.Read(p)
		if errors.Is(err, io.EOF) {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Write 每次写入发送一条二进制消息
func (c *Conn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.WriteMessage(ws.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close 发送关闭帧并关闭底层连接
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		werr := c.ws.WriteControl(ws.CloseMessage,
			ws.FormatCloseMessage(ws.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod))
		c.writeMu.Unlock()
		if errors.Is(werr, ws.ErrCloseSent) || errors.Is(werr, net.ErrClosed) {
			werr = nil
		}
		c.closeErr = multierr.Combine(werr, c.ws.Close())
	})
	return c.closeErr
}

// LocalAddr 本地地址
func (c *Conn) LocalAddr() net.Addr {
	return c.ws.LocalAddr()
}

// RemoteAddr 远端地址
func (c *Conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// LocalMultiaddr 本地多地址（带 /ws 后缀）
func (c *Conn) LocalMultiaddr() ma.Multiaddr {
	return swarmma.MustFromNetAddr(c.ws.LocalAddr(), swarmma.WS)
}

// RemoteMultiaddr 远端多地址（带 /ws 后缀）
func (c *Conn) RemoteMultiaddr() ma.Multiaddr {
	return swarmma.MustFromNetAddr(c.ws.RemoteAddr(), swarmma.WS)
}

// SetDeadline 设置读写截止时间
func (c *Conn) SetDeadline(t time.Time) error {
	return multierr.Combine(c.SetReadDeadline(t), c.SetWriteDeadline(t))
}

// SetReadDeadline 设置读截止时间
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

// SetWriteDeadline 设置写截止时间
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}

// mapCloseError 把正常关闭转换为 io.EOF
func mapCloseError(err error) error {
	if ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway, ws.CloseNoStatusReceived) {
		return io.EOF
	}
	return err
}
