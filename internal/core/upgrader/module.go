package upgrader

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-swarm/config"
	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// Params 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Fx 模块
//
// 提供驱动配置和协商原语；具体的 UpgradedNode 由组装方按连接类型构建。
func Module() fx.Option {
	return fx.Module("upgrader",
		fx.Provide(
			ProvideConfig,
			ProvideNegotiator,
		),
	)
}

// ProvideConfig 从统一配置提供驱动配置
func ProvideConfig(params Params) Config {
	return ConfigFromUnified(params.UnifiedCfg)
}

// ProvideNegotiator 提供默认协商原语
func ProvideNegotiator() pkgif.Negotiator {
	return Multistream{}
}

// Options 把注入的配置转换为驱动选项
func Options(cfg Config, n pkgif.Negotiator) []Option {
	return []Option{WithConfig(cfg), WithNegotiator(n)}
}
