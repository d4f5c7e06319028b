package memory

import (
	"context"
	"sync"

	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// Listener 内存监听器
type Listener struct {
	hub      *Hub
	addr     Addr
	incoming chan *Conn

	done      chan struct{}
	closeOnce sync.Once
}

// 确保实现接口
var _ pkgif.Listener[*Conn] = (*Listener)(nil)

func newListener(hub *Hub, port uint64) *Listener {
	return &Listener{
		hub:      hub,
		addr:     Addr{Port: port},
		incoming: make(chan *Conn),
		done:     make(chan struct{}),
	}
}

// Accept 接受连接
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	select {
	case c := <-l.incoming:
		return c, nil
	case <-l.done:
		return nil, types.ErrListenerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Multiaddr 返回 /memory/<port>
func (l *Listener) Multiaddr() ma.Multiaddr {
	return l.addr.Multiaddr()
}

// Close 关闭监听器，端口立即可被复用
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
		l.hub.unregister(l.addr.Port, l)
		logger.Debug("内存监听器已关闭", "addr", l.Multiaddr())
	})
	return nil
}
