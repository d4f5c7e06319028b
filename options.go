package swarm

import (
	"fmt"
	"time"

	"github.com/dep2p/go-swarm/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// WithConfig 使用完整配置
//
// 后续选项在该配置的副本上继续修改。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		o.config = config.CloneConfig(cfg)
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithTransports 设置启用的传输
func WithTransports(quic, tcp, websocket, memory bool) Option {
	return func(o *options) error {
		o.config.Transport = o.config.Transport.
			WithQUIC(quic).
			WithTCP(tcp).
			WithWebSocket(websocket).
			WithMemory(memory)
		return nil
	}
}

// WithMemoryOnly 只启用进程内传输
//
// 测试和单进程模拟使用。
func WithMemoryOnly() Option {
	return WithTransports(false, false, false, true)
}

// WithNoise 启用或禁用 Noise 加密
func WithNoise(enabled bool) Option {
	return func(o *options) error {
		o.config.Security = o.config.Security.WithNoise(enabled)
		return nil
	}
}

// WithPlaintext 启用或禁用明文升级
//
// 明文不提供任何保护，仅用于测试。
func WithPlaintext(enabled bool) Option {
	return func(o *options) error {
		o.config.Security = o.config.Security.WithPlaintext(enabled)
		return nil
	}
}

// WithNegotiateTimeout 设置出站协商超时
func WithNegotiateTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("negotiate timeout must be positive: %s", d)
		}
		o.config.Security = o.config.Security.WithNegotiateTimeout(d)
		return nil
	}
}

// WithDialTimeout 设置底层传输拨号超时
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("dial timeout must be positive: %s", d)
		}
		o.config.Transport = o.config.Transport.WithDialTimeout(d)
		return nil
	}
}

// WithMaxInboundUpgrades 设置并发入站升级上限
func WithMaxInboundUpgrades(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("max inbound upgrades must be positive: %d", n)
		}
		o.config.Upgrader.MaxInboundUpgrades = n
		return nil
	}
}
