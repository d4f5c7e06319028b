package tcp

import (
	"context"
	"net"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/transport/tcp")

// Config TCP 传输配置
type Config struct {
	DialTimeout     time.Duration
	KeepAlive       bool
	KeepAlivePeriod time.Duration
	NoDelay         bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout:     30 * time.Second,
		KeepAlive:       true,
		KeepAlivePeriod: 15 * time.Second,
		NoDelay:         true,
	}
}

func (c Config) keepAlive() time.Duration {
	if !c.KeepAlive {
		return -1
	}
	return c.KeepAlivePeriod
}

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport TCP 传输
//
// 产出的连接为 manet.Conn，即携带多地址的 net.Conn。
type Transport struct {
	cfg Config
}

// 确保实现接口
var _ pkgif.Transport[manet.Conn] = (*Transport)(nil)

// New 创建 TCP 传输
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// Dial 准备拨号
func (t *Transport) Dial(addr ma.Multiaddr) (pkgif.Future[manet.Conn], error) {
	if !swarmma.IsTCP(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	network, host, err := manet.DialArgs(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	return pkgif.FutureFunc[manet.Conn](func(ctx context.Context) (manet.Conn, error) {
		if t.cfg.DialTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.cfg.DialTimeout)
			defer cancel()
		}

		d := net.Dialer{KeepAlive: t.cfg.keepAlive()}
		c, err := d.DialContext(ctx, network, host)
		if err != nil {
			return nil, types.NewTransportError("dial", addr, err)
		}
		t.configure(c)

		mc, err := manet.WrapNetConn(c)
		if err != nil {
			_ = c.Close()
			return nil, types.NewTransportError("dial", addr, err)
		}
		logger.Debug("TCP 连接已建立", "remote", mc.RemoteMultiaddr())
		return mc, nil
	}), nil
}

// Listen 监听
func (t *Transport) Listen(addr ma.Multiaddr) (pkgif.Listener[manet.Conn], error) {
	if !swarmma.IsTCP(addr) {
		return nil, types.NewAddrNotSupportedError(addr)
	}
	network, host, err := manet.DialArgs(addr)
	if err != nil {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	lc := net.ListenConfig{KeepAlive: t.cfg.keepAlive()}
	nl, err := lc.Listen(context.Background(), network, host)
	if err != nil {
		return nil, types.NewTransportError("listen", addr, err)
	}

	l, err := newListener(nl, t)
	if err != nil {
		_ = nl.Close()
		return nil, types.NewTransportError("listen", addr, err)
	}

	logger.Debug("TCP 监听器已创建", "addr", l.Multiaddr())
	return l, nil
}

// configure 设置连接选项
func (t *Transport) configure(c net.Conn) {
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(t.cfg.NoDelay)
	}
}
