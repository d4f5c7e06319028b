package either

import (
	"io"
	"net"
	"time"

	"github.com/dep2p/go-swarm/pkg/lib/netconn"
)

// Conn 两路字节流
//
// Read/Write/Close 转发给当前变体。LocalAddr、RemoteAddr 与截止时间
// 在当前变体支持时转发，否则返回 nil 或 errors.ErrUnsupported，
// 因此 Conn 自身满足 net.Conn，可以继续嵌套。
type Conn[A, B io.ReadWriteCloser] struct {
	side   Side
	first  A
	second B
}

var _ net.Conn = Conn[net.Conn, net.Conn]{}

// FirstConn 构造 First 变体
func FirstConn[A, B io.ReadWriteCloser](a A) Conn[A, B] {
	return Conn[A, B]{side: First, first: a}
}

// SecondConn 构造 Second 变体
func SecondConn[A, B io.ReadWriteCloser](b B) Conn[A, B] {
	return Conn[A, B]{side: Second, second: b}
}

// Side 返回当前变体
func (c Conn[A, B]) Side() Side {
	return c.side
}

// First 返回 First 变体的连接
func (c Conn[A, B]) First() (A, bool) {
	return c.first, c.side == First
}

// Second 返回 Second 变体的连接
func (c Conn[A, B]) Second() (B, bool) {
	return c.second, c.side == Second
}

// Unwrap 返回当前变体的连接，零值返回 nil
func (c Conn[A, B]) Unwrap() io.ReadWriteCloser {
	switch c.side {
	case First:
		return c.first
	case Second:
		return c.second
	default:
		return nil
	}
}

func (c Conn[A, B]) Read(p []byte) (int, error) {
	switch c.side {
	case First:
		return c.first.Read(p)
	case Second:
		return c.second.Read(p)
	default:
		return 0, ErrEmpty
	}
}

func (c Conn[A, B]) Write(p []byte) (int, error) {
	switch c.side {
	case First:
		return c.first.Write(p)
	case Second:
		return c.second.Write(p)
	default:
		return 0, ErrEmpty
	}
}

func (c Conn[A, B]) Close() error {
	switch c.side {
	case First:
		return c.first.Close()
	case Second:
		return c.second.Close()
	default:
		return ErrEmpty
	}
}

// LocalAddr 当前变体的本地地址
func (c Conn[A, B]) LocalAddr() net.Addr {
	if inner := c.Unwrap(); inner != nil {
		return netconn.LocalAddr(inner)
	}
	return nil
}

// RemoteAddr 当前变体的远端地址
func (c Conn[A, B]) RemoteAddr() net.Addr {
	if inner := c.Unwrap(); inner != nil {
		return netconn.RemoteAddr(inner)
	}
	return nil
}

// SetDeadline 转发截止时间
func (c Conn[A, B]) SetDeadline(t time.Time) error {
	if inner := c.Unwrap(); inner != nil {
		return netconn.SetDeadline(inner, t)
	}
	return ErrEmpty
}

// SetReadDeadline 转发读截止时间
func (c Conn[A, B]) SetReadDeadline(t time.Time) error {
	if inner := c.Unwrap(); inner != nil {
		return netconn.SetReadDeadline(inner, t)
	}
	return ErrEmpty
}

// SetWriteDeadline 转发写截止时间
func (c Conn[A, B]) SetWriteDeadline(t time.Time) error {
	if inner := c.Unwrap(); inner != nil {
		return netconn.SetWriteDeadline(inner, t)
	}
	return ErrEmpty
}
