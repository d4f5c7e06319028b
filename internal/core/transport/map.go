package transport

import (
	"context"
	"net"

	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// Map 转换传输产出的连接类型
//
// 地址判定与错误原样透传，f 只作用于成功建立的连接。
func Map[C, D any](t pkgif.Transport[C], f func(C) D) pkgif.Transport[D] {
	return &mapped[C, D]{inner: t, f: f}
}

// Erase 把具体连接类型擦除为 net.Conn
//
// 只在最外层 API 边界使用，内部组合保持具体类型。
func Erase[C net.Conn](t pkgif.Transport[C]) pkgif.Transport[net.Conn] {
	return Map(t, func(c C) net.Conn { return c })
}

type mapped[C, D any] struct {
	inner pkgif.Transport[C]
	f     func(C) D
}

func (m *mapped[C, D]) Dial(addr ma.Multiaddr) (pkgif.Future[D], error) {
	fut, err := m.inner.Dial(addr)
	if err != nil {
		return nil, err
	}
	return pkgif.FutureFunc[D](func(ctx context.Context) (D, error) {
		c, err := fut.Await(ctx)
		if err != nil {
			var zero D
			return zero, err
		}
		return m.f(c), nil
	}), nil
}

func (m *mapped[C, D]) Listen(addr ma.Multiaddr) (pkgif.Listener[D], error) {
	l, err := m.inner.Listen(addr)
	if err != nil {
		return nil, err
	}
	return &mappedListener[C, D]{inner: l, f: m.f}, nil
}

type mappedListener[C, D any] struct {
	inner pkgif.Listener[C]
	f     func(C) D
}

func (l *mappedListener[C, D]) Accept(ctx context.Context) (D, error) {
	c, err := l.inner.Accept(ctx)
	if err != nil {
		var zero D
		return zero, err
	}
	return l.f(c), nil
}

func (l *mappedListener[C, D]) Multiaddr() ma.Multiaddr {
	return l.inner.Multiaddr()
}

func (l *mappedListener[C, D]) Close() error {
	return l.inner.Close()
}
