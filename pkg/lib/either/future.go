package either

import (
	"context"
	"io"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// Future 两路延迟拨号结果
//
// Await 等待当前变体的 Future，并把连接包装为同一标签的 Conn。
type Future[A, B io.ReadWriteCloser] struct {
	side   Side
	first  pkgif.Future[A]
	second pkgif.Future[B]
}

var _ pkgif.Future[Conn[io.ReadWriteCloser, io.ReadWriteCloser]] = Future[io.ReadWriteCloser, io.ReadWriteCloser]{}

// FirstFuture 构造 First 变体
func FirstFuture[A, B io.ReadWriteCloser](f pkgif.Future[A]) Future[A, B] {
	return Future[A, B]{side: First, first: f}
}

// SecondFuture 构造 Second 变体
func SecondFuture[A, B io.ReadWriteCloser](f pkgif.Future[B]) Future[A, B] {
	return Future[A, B]{side: Second, second: f}
}

// Side 返回当前变体
func (f Future[A, B]) Side() Side {
	return f.side
}

// Await 等待结果
func (f Future[A, B]) Await(ctx context.Context) (Conn[A, B], error) {
	switch f.side {
	case First:
		a, err := f.first.Await(ctx)
		if err != nil {
			return Conn[A, B]{}, err
		}
		return FirstConn[A, B](a), nil
	case Second:
		b, err := f.second.Await(ctx)
		if err != nil {
			return Conn[A, B]{}, err
		}
		return SecondConn[A, B](b), nil
	default:
		return Conn[A, B]{}, ErrEmpty
	}
}
