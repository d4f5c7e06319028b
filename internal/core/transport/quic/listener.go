package quic

import (
	"context"
	"sync"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/quic-go/quic-go"
	"go.uber.org/multierr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// Listener QUIC 监听器
//
// 后台循环接受 QUIC 连接，并在各自的 goroutine 中等待对端打开首条流，
// 避免慢速对端阻塞后续连接。
type Listener struct {
	listener *quic.Listener
	tr       *quic.Transport
	addr     ma.Multiaddr

	streamTimeout time.Duration

	incoming chan *Conn
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	// failed 在接受循环异常退出时关闭，failErr 随之可读
	failed  chan struct{}
	failErr error

	closeOnce sync.Once
	closeErr  error
}

// 确保实现接口
var _ pkgif.Listener[*Conn] = (*Listener)(nil)

func newListener(ql *quic.Listener, tr *quic.Transport, addr ma.Multiaddr, streamTimeout time.Duration) *Listener {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Listener{
		listener:      ql,
		tr:            tr,
		addr:          addr,
		streamTimeout: streamTimeout,
		incoming:      make(chan *Conn),
		failed:        make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
	l.wg.Add(1)
	go l.acceptLoop()
	return l
}

func (l *Listener) acceptLoop() {
	defer l.wg.Done()

	for {
		qc, err := l.listener.Accept(l.ctx)
		if err != nil {
			if l.ctx.Err() == nil {
				logger.Warn("QUIC 接受连接失败", "addr", l.addr, "error", err)
				l.failErr = types.NewTransportError("accept", l.addr, err)
				close(l.failed)
			}
			return
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.awaitStream(qc)
		}()
	}
}

// awaitStream 等待对端打开首条双向流
func (l *Listener) awaitStream(qc quic.Connection) {
	ctx := l.ctx
	if l.streamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.streamTimeout)
		defer cancel()
	}

	str, err := qc.AcceptStream(ctx)
	if err != nil {
		logger.Debug("QUIC 对端未打开流", "remote", qc.RemoteAddr(), "error", err)
		_ = qc.CloseWithError(0, "")
		return
	}

	c := newConn(qc, str)
	select {
	case l.incoming <- c:
	case <-l.ctx.Done():
		_ = c.Close()
	}
}

// Accept 接受连接
//
// 底层 socket 失效后返回 *types.TransportError。
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	select {
	case c := <-l.incoming:
		return c, nil
	case <-l.ctx.Done():
		return nil, types.ErrListenerClosed
	case <-l.failed:
		return nil, l.failErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Multiaddr 返回实际监听地址
func (l *Listener) Multiaddr() ma.Multiaddr {
	return l.addr
}

// Close 关闭监听器及其 UDP socket
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.cancel()
		err := l.listener.Close()
		l.wg.Wait()
		// quic.Transport.Close 同时关闭 UDP socket
		l.closeErr = multierr.Combine(err, l.tr.Close())
	})
	return l.closeErr
}
