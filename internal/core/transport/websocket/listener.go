package websocket

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	ws "github.com/gorilla/websocket"
	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

// Listener WebSocket 监听器
//
// 内部运行一个 http.Server，把升级成功的连接交给 Accept。
type Listener struct {
	nl       net.Listener
	addr     ma.Multiaddr
	server   *http.Server
	upgrader ws.Upgrader

	incoming chan *Conn
	done     chan struct{}

	closeOnce sync.Once

	// served 在 Serve 返回后关闭，serveErr 随之可读
	served   chan struct{}
	serveErr error
}

// 确保实现接口
var _ pkgif.Listener[*Conn] = (*Listener)(nil)

func newListener(host string, cfg Config) (*Listener, error) {
	nl, err := net.Listen("tcp", host)
	if err != nil {
		return nil, err
	}
	addr, err := swarmma.FromNetAddr(nl.Addr(), swarmma.WS)
	if err != nil {
		_ = nl.Close()
		return nil, err
	}

	l := &Listener{
		nl:   nl,
		addr: addr,
		upgrader: ws.Upgrader{
			HandshakeTimeout:  cfg.HandshakeTimeout,
			ReadBufferSize:    cfg.ReadBufferSize,
			WriteBufferSize:   cfg.WriteBufferSize,
			EnableCompression: cfg.EnableCompression,
			CheckOrigin:       func(*http.Request) bool { return true },
		},
		incoming: make(chan *Conn),
		done:     make(chan struct{}),
		served:   make(chan struct{}),
	}
	l.server = &http.Server{
		Handler:           l,
		ReadHeaderTimeout: cfg.HandshakeTimeout,
	}

	go func() {
		l.serveErr = l.server.Serve(nl)
		close(l.served)
	}()
	return l, nil
}

// ServeHTTP 升级 HTTP 请求并把连接交给 Accept
func (l *Listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("WebSocket 升级失败", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := newConn(c)
	select {
	case l.incoming <- conn:
	case <-l.done:
		_ = conn.Close()
	}
}

// Accept 接受连接
//
// 底层 socket 失效后返回 *types.TransportError。
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	select {
	case c := <-l.incoming:
		return c, nil
	case <-l.done:
		return nil, types.ErrListenerClosed
	case <-l.served:
		return nil, l.failure()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// failure 在 Serve 返回后给出 Accept 的错误
func (l *Listener) failure() error {
	select {
	case <-l.done:
		return types.ErrListenerClosed
	default:
	}
	if l.serveErr == nil || errors.Is(l.serveErr, http.ErrServerClosed) {
		return types.ErrListenerClosed
	}
	return types.NewTransportError("accept", l.addr, l.serveErr)
}

// Multiaddr 返回实际监听地址
func (l *Listener) Multiaddr() ma.Multiaddr {
	return l.addr
}

// Close 关闭监听器
//
// 已交付的连接不受影响。
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.server.Close()
		<-l.served
		if l.serveErr != nil && !errors.Is(l.serveErr, http.ErrServerClosed) {
			logger.Warn("WebSocket 服务退出异常", "error", l.serveErr)
		}
	})
	return err
}
