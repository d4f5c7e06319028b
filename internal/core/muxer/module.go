package muxer

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/muxer/yamux"
	"github.com/dep2p/go-swarm/internal/core/security"
)

// Upgrade 多路复用升级，作用在加密升级的输出之上
type Upgrade = yamux.Upgrade[security.Conn]

// ConfigFromUnified 从统一配置创建 yamux 配置
func ConfigFromUnified(cfg *config.Config) yamux.Config {
	if cfg == nil {
		return yamux.DefaultConfig()
	}
	y := cfg.Muxer.Yamux
	return yamux.Config{
		AcceptBacklog:          y.AcceptBacklog,
		EnableKeepAlive:        y.EnableKeepAlive,
		KeepAliveInterval:      y.KeepAliveInterval.Duration(),
		ConnectionWriteTimeout: y.ConnectionWriteTimeout.Duration(),
		MaxStreamWindowSize:    y.MaxStreamWindowSize,
		StreamOpenTimeout:      y.StreamOpenTimeout.Duration(),
		StreamCloseTimeout:     y.StreamCloseTimeout.Duration(),
	}
}

// Params Muxer 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 是 muxer 的 Fx 模块
func Module() fx.Option {
	return fx.Module("muxer",
		fx.Provide(NewUpgradeFromParams),
	)
}

// NewUpgradeFromParams 从参数创建多路复用升级
func NewUpgradeFromParams(p Params) *Upgrade {
	return yamux.New[security.Conn](ConfigFromUnified(p.UnifiedCfg))
}
