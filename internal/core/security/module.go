package security

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/security/noise"
	"github.com/dep2p/go-swarm/internal/core/security/plaintext"
	"github.com/dep2p/go-swarm/internal/core/transport"
	"github.com/dep2p/go-swarm/internal/core/upgrader"
	"github.com/dep2p/go-swarm/pkg/lib/either"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/security")

// ============================================================================
//                              默认加密升级
// ============================================================================

// Conn 加密升级的输出：First 为 Noise，Second 为明文
type Conn = either.Conn[*noise.Conn, transport.RawConn]

// Upgrade Noise ∨ PlainText
type Upgrade = upgrader.Choice[transport.RawConn, types.ProtocolID, types.ProtocolID, *noise.Conn, transport.RawConn]

// Config 安全层配置
type Config struct {
	EnableNoise     bool
	EnablePlaintext bool
	Noise           noise.Config
}

// ConfigFromUnified 从统一配置创建安全层配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Config{
		EnableNoise:     cfg.Security.EnableNoise,
		EnablePlaintext: cfg.Security.EnablePlaintext,
		Noise: noise.Config{
			HandshakeTimeout: cfg.Security.Noise.HandshakeTimeout.OrDefault(30 * time.Second),
		},
	}
}

// NewUpgrade 组装默认加密升级
func NewUpgrade(cfg Config, n *noise.Upgrade[transport.RawConn]) *Upgrade {
	return upgrader.Or[transport.RawConn, types.ProtocolID, types.ProtocolID, *noise.Conn, transport.RawConn](
		upgrader.When[transport.RawConn, types.ProtocolID, *noise.Conn](cfg.EnableNoise && n != nil, n),
		upgrader.When[transport.RawConn, types.ProtocolID, transport.RawConn](cfg.EnablePlaintext, plaintext.New[transport.RawConn]()),
	)
}

// Source 返回加密连接使用的协议
func Source(c Conn) types.ProtocolID {
	switch c.Side() {
	case either.First:
		return noise.ProtocolID
	case either.Second:
		return plaintext.ProtocolID
	}
	return ""
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("security",
		fx.Provide(
			ProvideConfig,
			ProvideNoise,
			NewUpgrade,
		),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConfig 从统一配置提供安全层配置
func ProvideConfig(cfg *config.Config) Config {
	return ConfigFromUnified(cfg)
}

// ProvideNoise 提供 Noise 升级，禁用时为 nil
func ProvideNoise(cfg Config) (*noise.Upgrade[transport.RawConn], error) {
	if !cfg.EnableNoise {
		return nil, nil
	}
	return noise.New[transport.RawConn](cfg.Noise)
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, cfg Config) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("安全模块启动", "noise", cfg.EnableNoise, "plaintext", cfg.EnablePlaintext)
			return nil
		},
	})
}
