package swarm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/muxer"
	"github.com/dep2p/go-swarm/internal/core/muxer/yamux"
	"github.com/dep2p/go-swarm/internal/core/security"
	"github.com/dep2p/go-swarm/internal/core/transport"
	"github.com/dep2p/go-swarm/internal/core/upgrader"
	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/either"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("swarm")

// stopTimeout 关闭 Fx 应用的超时
const stopTimeout = 15 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              默认栈
// ════════════════════════════════════════════════════════════════════════════

type (
	// SecuredNode 回退链 + 加密升级
	SecuredNode = upgrader.UpgradedNode[transport.RawConn, either.Value[types.ProtocolID, types.ProtocolID], security.Conn]

	// MuxedNode 加密连接 + yamux
	MuxedNode = upgrader.UpgradedNode[security.Conn, types.ProtocolID, *yamux.Muxer]
)

// NewNetwork 组装默认栈并擦除为 MuxedConn
//
// 两层 UpgradedNode 共用同一组驱动选项。
func NewNetwork(t *transport.Stack, sec *security.Upgrade, mux *muxer.Upgrade, opts ...upgrader.Option) pkgif.Transport[pkgif.MuxedConn] {
	secured := upgrader.WithUpgrade[transport.RawConn, either.Value[types.ProtocolID, types.ProtocolID], security.Conn](t, sec, opts...)
	muxed := upgrader.WithUpgrade[security.Conn, types.ProtocolID, *yamux.Muxer](secured, mux, opts...)
	return transport.Map[*yamux.Muxer, pkgif.MuxedConn](muxed, func(m *yamux.Muxer) pkgif.MuxedConn {
		return m
	})
}

// ════════════════════════════════════════════════════════════════════════════
//                              Swarm
// ════════════════════════════════════════════════════════════════════════════

// Swarm 默认栈的门面
//
// Swarm 持有 Fx 应用以及经由它创建的监听器，Close 时统一释放。
// 所有方法都可以并发调用。
type Swarm struct {
	config  *config.Config
	app     *fx.App
	network pkgif.Transport[pkgif.MuxedConn]

	mu        sync.Mutex
	listeners []pkgif.Listener[pkgif.MuxedConn]
	closed    atomic.Bool
}

// New 创建并启动 Swarm
//
// 示例：
//
//	s, err := swarm.New(ctx,
//	    swarm.WithMemoryOnly(),
//	    swarm.WithPlaintext(true),
//	)
func New(ctx context.Context, opts ...Option) (*Swarm, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	cfg := o.config

	if !hasAnyTransport(cfg) {
		return nil, ErrNoTransport
	}
	if !cfg.Security.EnableNoise && !cfg.Security.EnablePlaintext {
		return nil, ErrNoSecurity
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	s := &Swarm{config: cfg}
	s.app = buildFxApp(cfg, s)
	if err := s.app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	if err := s.app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start swarm: %w", err)
	}

	logger.Info("Swarm 已启动",
		"quic", cfg.Transport.EnableQUIC,
		"tcp", cfg.Transport.EnableTCP,
		"websocket", cfg.Transport.EnableWebSocket,
		"memory", cfg.Transport.EnableMemory,
		"noise", cfg.Security.EnableNoise,
		"plaintext", cfg.Security.EnablePlaintext)
	return s, nil
}

// Network 返回默认栈
//
// 返回值本身是 Transport，可以继续参与组合。
func (s *Swarm) Network() pkgif.Transport[pkgif.MuxedConn] {
	return s.network
}

// Config 返回生效配置的副本
func (s *Swarm) Config() *config.Config {
	return config.CloneConfig(s.config)
}

// Dial 拨号到地址并完成加密与多路复用协商
func (s *Swarm) Dial(ctx context.Context, addr string) (pkgif.MuxedConn, error) {
	maddr, err := ma.NewMultiaddr(addr)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", addr, err)
	}
	return s.DialMultiaddr(ctx, maddr)
}

// DialMultiaddr 同 Dial，接受已解析的地址
func (s *Swarm) DialMultiaddr(ctx context.Context, addr ma.Multiaddr) (pkgif.MuxedConn, error) {
	if s.closed.Load() {
		return nil, ErrSwarmClosed
	}

	fut, err := s.network.Dial(addr)
	if err != nil {
		return nil, err
	}
	conn, err := fut.Await(ctx)
	if err != nil {
		logger.Debug("拨号失败", "addr", addr, "error", err)
		return nil, err
	}

	logger.Debug("连接已建立", "addr", addr)
	return conn, nil
}

// Listen 在地址上监听
//
// 返回的监听器由 Swarm 跟踪，Close 时一并关闭；调用方也可以提前关闭它。
func (s *Swarm) Listen(addr string) (pkgif.Listener[pkgif.MuxedConn], error) {
	maddr, err := ma.NewMultiaddr(addr)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", addr, err)
	}
	return s.ListenMultiaddr(maddr)
}

// ListenMultiaddr 同 Listen，接受已解析的地址
func (s *Swarm) ListenMultiaddr(addr ma.Multiaddr) (pkgif.Listener[pkgif.MuxedConn], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSwarmClosed
	}

	l, err := s.network.Listen(addr)
	if err != nil {
		return nil, err
	}
	s.listeners = append(s.listeners, l)

	logger.Info("开始监听", "addr", l.Multiaddr())
	return l, nil
}

// ListenAddrs 返回所有监听器的实际地址
func (s *Swarm) ListenAddrs() []ma.Multiaddr {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := make([]ma.Multiaddr, 0, len(s.listeners))
	for _, l := range s.listeners {
		addrs = append(addrs, l.Multiaddr())
	}
	return addrs
}

// Close 关闭所有监听器并停止 Fx 应用
//
// 重复调用返回 nil。已经交给调用方的连接不受影响。
func (s *Swarm) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	listeners := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	var err error
	for _, l := range listeners {
		err = multierr.Append(err, l.Close())
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	err = multierr.Append(err, s.app.Stop(ctx))

	logger.Info("Swarm 已关闭")
	return err
}

// hasAnyTransport 检查是否启用任何传输
func hasAnyTransport(cfg *config.Config) bool {
	return cfg.Transport.EnableQUIC ||
		cfg.Transport.EnableTCP ||
		cfg.Transport.EnableWebSocket ||
		cfg.Transport.EnableMemory
}
