package transport

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/transport/memory"
	"github.com/dep2p/go-swarm/internal/core/transport/quic"
	"github.com/dep2p/go-swarm/internal/core/transport/tcp"
	"github.com/dep2p/go-swarm/internal/core/transport/websocket"
	"github.com/dep2p/go-swarm/pkg/lib/log"
)

var logger = log.Logger("core/transport")

// TransportOutput Fx 输出
//
// 未启用的传输为 nil。
type TransportOutput struct {
	fx.Out

	QUIC      *quic.Transport
	TCP       *tcp.Transport
	WebSocket *websocket.Transport
	Memory    *memory.Transport
}

// StackParams 组合回退链所需的依赖
type StackParams struct {
	fx.In

	Config    Config
	QUIC      *quic.Transport
	TCP       *tcp.Transport
	WebSocket *websocket.Transport
	Memory    *memory.Transport
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(
			ProvideConfig,
			ProvideTransports,
			ProvideStack,
		),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConfig 从统一配置提供传输配置
func ProvideConfig(cfg *config.Config) Config {
	return ConfigFromUnified(cfg)
}

// ProvideTransports 按配置创建具体传输
func ProvideTransports(cfg Config) (TransportOutput, error) {
	var out TransportOutput

	if cfg.EnableQUIC {
		q, err := quic.New(cfg.QUIC)
		if err != nil {
			return TransportOutput{}, err
		}
		out.QUIC = q
	}
	if cfg.EnableTCP {
		out.TCP = tcp.New(cfg.TCP)
	}
	if cfg.EnableWebSocket {
		out.WebSocket = websocket.New(cfg.WebSocket)
	}
	if cfg.EnableMemory {
		out.Memory = memory.New()
	}

	logger.Debug("传输已创建",
		"quic", cfg.EnableQUIC, "tcp", cfg.EnableTCP,
		"websocket", cfg.EnableWebSocket, "memory", cfg.EnableMemory)
	return out, nil
}

// ProvideStack 提供默认回退链
func ProvideStack(p StackParams) *Stack {
	return NewStack(p.Config, p.QUIC, p.TCP, p.WebSocket, p.Memory)
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, p StackParams) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if p.QUIC != nil {
				return p.QUIC.Close()
			}
			return nil
		},
	})
}
