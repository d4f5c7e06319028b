package websocket

import (
	"context"
	"fmt"
	"time"

	ws "github.com/gorilla/websocket"
	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/transport/websocket")

// Config WebSocket 传输配置
type Config struct {
	DialTimeout       time.Duration
	HandshakeTimeout  time.Duration
	ReadBufferSize    int
	WriteBufferSize   int
	EnableCompression bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout:      30 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}
}

// Transport WebSocket 传输
type Transport struct {
	cfg Config
}

// 确保实现接口
var _ pkgif.Transport[*Conn] = (*Transport)(nil)

// New 创建 WebSocket 传输
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// Dial 准备拨号
func (t *Transport) Dial(addr ma.Multiaddr) (pkgif.Future[*Conn], error) {
	if !swarmma.IsWebSocket(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	host, err := swarmma.HostPort(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	url := fmt.Sprintf("ws://%s/", host)

	return pkgif.FutureFunc[*Conn](func(ctx context.Context) (*Conn, error) {
		if t.cfg.DialTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.cfg.DialTimeout)
			defer cancel()
		}

		d := ws.Dialer{
			HandshakeTimeout:  t.cfg.HandshakeTimeout,
			ReadBufferSize:    t.cfg.ReadBufferSize,
			WriteBufferSize:   t.cfg.WriteBufferSize,
			EnableCompression: t.cfg.EnableCompression,
		}
		c, resp, err := d.DialContext(ctx, url, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			return nil, types.NewTransportError("dial", addr, err)
		}

		logger.Debug("WebSocket 连接已建立", "remote", addr)
		return newConn(c), nil
	}), nil
}

// Listen 监听
func (t *Transport) Listen(addr ma.Multiaddr) (pkgif.Listener[*Conn], error) {
	if !swarmma.IsWebSocket(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	host, err := swarmma.HostPort(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	l, err := newListener(host, t.cfg)
	if err != nil {
		return nil, types.NewTransportError("listen", addr, err)
	}

	logger.Debug("WebSocket 监听器已创建", "addr", l.Multiaddr())
	return l, nil
}
