package either

import (
	"context"
	"io"

	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// Listener 两路连接序列
//
// Accept 产生的每个连接都打上与监听器相同的标签。
type Listener[A, B io.ReadWriteCloser] struct {
	side   Side
	first  pkgif.Listener[A]
	second pkgif.Listener[B]
}

var _ pkgif.Listener[Conn[io.ReadWriteCloser, io.ReadWriteCloser]] = Listener[io.ReadWriteCloser, io.ReadWriteCloser]{}

// FirstListener 构造 First 变体
func FirstListener[A, B io.ReadWriteCloser](l pkgif.Listener[A]) Listener[A, B] {
	return Listener[A, B]{side: First, first: l}
}

// SecondListener 构造 Second 变体
func SecondListener[A, B io.ReadWriteCloser](l pkgif.Listener[B]) Listener[A, B] {
	return Listener[A, B]{side: Second, second: l}
}

// Side 返回当前变体
func (l Listener[A, B]) Side() Side {
	return l.side
}

// Accept 接受下一个连接
func (l Listener[A, B]) Accept(ctx context.Context) (Conn[A, B], error) {
	switch l.side {
	case First:
		a, err := l.first.Accept(ctx)
		if err != nil {
			return Conn[A, B]{}, err
		}
		return FirstConn[A, B](a), nil
	case Second:
		b, err := l.second.Accept(ctx)
		if err != nil {
			return Conn[A, B]{}, err
		}
		return SecondConn[A, B](b), nil
	default:
		return Conn[A, B]{}, ErrEmpty
	}
}

// Multiaddr 返回监听地址
func (l Listener[A, B]) Multiaddr() ma.Multiaddr {
	switch l.side {
	case First:
		return l.first.Multiaddr()
	case Second:
		return l.second.Multiaddr()
	default:
		return nil
	}
}

// Close 关闭监听器
func (l Listener[A, B]) Close() error {
	switch l.side {
	case First:
		return l.first.Close()
	case Second:
		return l.second.Close()
	default:
		return ErrEmpty
	}
}
