package tcp

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ============================================================================
//                              Listener 实现
// ============================================================================

// Listener TCP 监听器
type Listener struct {
	raw       *net.TCPListener
	addr      ma.Multiaddr
	transport *Transport
	closed    atomic.Bool
}

// 确保实现接口
var _ pkgif.Listener[manet.Conn] = (*Listener)(nil)

func newListener(nl net.Listener, t *Transport) (*Listener, error) {
	raw, ok := nl.(*net.TCPListener)
	if !ok {
		return nil, errors.New("not a TCP listener")
	}
	addr, err := manet.FromNetAddr(raw.Addr())
	if err != nil {
		return nil, err
	}
	return &Listener{raw: raw, addr: addr, transport: t}, nil
}

// Accept 接受连接
//
// ctx 结束时通过把截止时间设为过去来中断阻塞的 Accept。
func (l *Listener) Accept(ctx context.Context) (manet.Conn, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = l.raw.SetDeadline(time.Unix(1, 0))
	})
	c, err := l.raw.AcceptTCP()
	if !stop() {
		_ = l.raw.SetDeadline(time.Time{})
		if c != nil {
			_ = c.Close()
		}
		return nil, ctx.Err()
	}
	if err != nil {
		if l.closed.Load() || errors.Is(err, net.ErrClosed) {
			return nil, types.ErrListenerClosed
		}
		return nil, types.NewTransportError("accept", l.addr, err)
	}

	l.transport.configure(c)
	mc, err := manet.WrapNetConn(c)
	if err != nil {
		_ = c.Close()
		return nil, types.NewTransportError("accept", l.addr, err)
	}
	return mc, nil
}

// Multiaddr 返回实际监听地址（端口 0 时为分配后的端口）
func (l *Listener) Multiaddr() ma.Multiaddr {
	return l.addr
}

// Close 关闭监听器
func (l *Listener) Close() error {
	if l.closed.CompareAndSwap(false, true) {
		return l.raw.Close()
	}
	return nil
}
