package quic

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"sync"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/quic-go/quic-go"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/transport/quic")

// ErrTransportClosed 传输已关闭
var ErrTransportClosed = errors.New("quic transport closed")

// Config QUIC 传输配置
type Config struct {
	DialTimeout          time.Duration
	MaxIdleTimeout       time.Duration
	HandshakeIdleTimeout time.Duration
	KeepAlivePeriod      time.Duration

	// StreamAcceptTimeout 入站连接等待对端打开流的超时
	StreamAcceptTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout:          30 * time.Second,
		MaxIdleTimeout:       30 * time.Second,
		HandshakeIdleTimeout: 5 * time.Second,
		KeepAlivePeriod:      15 * time.Second,
		StreamAcceptTimeout:  10 * time.Second,
	}
}

func (c Config) quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:       c.MaxIdleTimeout,
		HandshakeIdleTimeout: c.HandshakeIdleTimeout,
		KeepAlivePeriod:      c.KeepAlivePeriod,
	}
}

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport QUIC 传输
type Transport struct {
	cfg       Config
	qconf     *quic.Config
	serverTLS *tls.Config
	clientTLS *tls.Config

	mu      sync.Mutex
	udpConn *net.UDPConn
	dialer  *quic.Transport
	closed  bool
}

// 确保实现接口
var _ pkgif.Transport[*Conn] = (*Transport)(nil)

// New 创建 QUIC 传输
func New(cfg Config) (*Transport, error) {
	serverTLS, clientTLS, err := newTLSConfigs()
	if err != nil {
		return nil, err
	}
	return &Transport{
		cfg:       cfg,
		qconf:     cfg.quicConfig(),
		serverTLS: serverTLS,
		clientTLS: clientTLS,
	}, nil
}

// dialTransport 返回共享的拨号 socket，首次调用时创建
func (t *Transport) dialTransport() (*quic.Transport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrTransportClosed
	}
	if t.dialer == nil {
		conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
		if err != nil {
			return nil, err
		}
		t.udpConn = conn
		t.dialer = &quic.Transport{Conn: conn}
	}
	return t.dialer, nil
}

// Dial 准备拨号
func (t *Transport) Dial(addr ma.Multiaddr) (pkgif.Future[*Conn], error) {
	if !swarmma.IsQUIC(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	host, err := swarmma.HostPort(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	return pkgif.FutureFunc[*Conn](func(ctx context.Context) (*Conn, error) {
		if t.cfg.DialTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.cfg.DialTimeout)
			defer cancel()
		}

		udpAddr, err := net.ResolveUDPAddr("udp", host)
		if err != nil {
			return nil, types.NewTransportError("dial", addr, err)
		}
		tr, err := t.dialTransport()
		if err != nil {
			return nil, types.NewTransportError("dial", addr, err)
		}

		qc, err := tr.Dial(ctx, udpAddr, t.clientTLS, t.qconf)
		if err != nil {
			return nil, types.NewTransportError("dial", addr, err)
		}
		str, err := qc.OpenStreamSync(ctx)
		if err != nil {
			_ = qc.CloseWithError(0, "")
			return nil, types.NewTransportError("dial", addr, err)
		}

		logger.Debug("QUIC 连接已建立", "remote", addr)
		return newConn(qc, str), nil
	}), nil
}

// Listen 监听
func (t *Transport) Listen(addr ma.Multiaddr) (pkgif.Listener[*Conn], error) {
	if !swarmma.IsQUIC(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	host, err := swarmma.HostPort(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, types.NewTransportError("listen", addr, ErrTransportClosed)
	}

	udpAddr, err := net.ResolveUDPAddr("udp", host)
	if err != nil {
		return nil, types.NewTransportError("listen", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, types.NewTransportError("listen", addr, err)
	}

	tr := &quic.Transport{Conn: conn}
	ql, err := tr.Listen(t.serverTLS, t.qconf)
	if err != nil {
		_ = tr.Close()
		_ = conn.Close()
		return nil, types.NewTransportError("listen", addr, err)
	}

	local, err := swarmma.FromNetAddr(conn.LocalAddr(), swarmma.QUICV1)
	if err != nil {
		_ = ql.Close()
		_ = tr.Close()
		_ = conn.Close()
		return nil, types.NewTransportError("listen", addr, err)
	}

	l := newListener(ql, tr, local, t.cfg.StreamAcceptTimeout)
	logger.Debug("QUIC 监听器已创建", "addr", local)
	return l, nil
}

// Close 关闭共享的拨号 socket
//
// 已建立的出站连接随之终止；监听器需单独关闭。
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var err error
	if t.dialer != nil {
		err = t.dialer.Close()
		_ = t.udpConn.Close()
		t.dialer = nil
		t.udpConn = nil
	}
	return err
}
