package swarm

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/muxer"
	"github.com/dep2p/go-swarm/internal/core/security"
	"github.com/dep2p/go-swarm/internal/core/transport"
	"github.com/dep2p/go-swarm/internal/core/upgrader"
	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
)

var fxLogger = log.Logger("swarm/fx")

// networkParams 组装默认栈所需的依赖
type networkParams struct {
	fx.In

	Transports *transport.Stack
	Security   *security.Upgrade
	Muxer      *muxer.Upgrade
	Config     upgrader.Config
	Negotiator pkgif.Negotiator
}

// buildFxApp 构建 Fx 应用
//
// 模块加载顺序：
//  1. 配置注入
//  2. 传输层（QUIC/TCP/WebSocket/Memory 回退链）
//  3. 安全层（Noise ∨ PlainText）
//  4. 多路复用（yamux）
//  5. 协商驱动配置
//  6. 默认栈组装
func buildFxApp(cfg *config.Config, s *Swarm) *fx.App {
	modules := []fx.Option{
		// ════════════════════════════════════════════════════════════════════
		// 1. 配置注入
		// ════════════════════════════════════════════════════════════════════
		fx.Supply(cfg),

		// ════════════════════════════════════════════════════════════════════
		// 2-5. 核心模块
		// ════════════════════════════════════════════════════════════════════
		transport.Module(),
		security.Module(),
		muxer.Module(),
		upgrader.Module(),

		// ════════════════════════════════════════════════════════════════════
		// 6. 默认栈
		// ════════════════════════════════════════════════════════════════════
		fx.Provide(provideNetwork),
		fx.Populate(&s.network),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	}

	fxLogger.Debug("构建 Fx 应用", "modules", len(modules))
	return fx.New(modules...)
}

// provideNetwork 从注入的组件组装默认栈
func provideNetwork(p networkParams) pkgif.Transport[pkgif.MuxedConn] {
	return NewNetwork(p.Transports, p.Security, p.Muxer, upgrader.Options(p.Config, p.Negotiator)...)
}
