package upgrader

import (
	"time"

	"github.com/dep2p/go-swarm/config"
	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// Config 协商驱动配置
type Config struct {
	// NegotiateTimeout 单次拨号协商+升级超时，0 表示只受调用方 ctx 约束
	NegotiateTimeout time.Duration

	// AcceptTimeout 入站连接从接受到升级完成的超时
	AcceptTimeout time.Duration

	// MaxInboundUpgrades 同时进行升级的入站连接上限
	MaxInboundUpgrades int

	// AcceptBacklog 已完成升级、等待 Accept 的连接队列长度
	AcceptBacklog int

	// AcceptRate 每秒允许开始升级的入站连接数，0 表示不限速
	AcceptRate float64

	// AcceptBurst 速率限制的突发量
	AcceptBurst int
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		NegotiateTimeout:   60 * time.Second,
		AcceptTimeout:      60 * time.Second,
		MaxInboundUpgrades: 64,
		AcceptBacklog:      128,
		AcceptBurst:        32,
	}
}

// ConfigFromUnified 从统一配置创建驱动配置
func ConfigFromUnified(cfg *config.Config) Config {
	c := NewConfig()
	if cfg == nil {
		return c
	}

	c.NegotiateTimeout = cfg.Security.NegotiateTimeout.OrDefault(c.NegotiateTimeout)
	c.AcceptTimeout = cfg.Upgrader.AcceptTimeout.OrDefault(c.AcceptTimeout)
	if cfg.Upgrader.MaxInboundUpgrades > 0 {
		c.MaxInboundUpgrades = cfg.Upgrader.MaxInboundUpgrades
	}
	if cfg.Upgrader.AcceptBacklog >= 0 {
		c.AcceptBacklog = cfg.Upgrader.AcceptBacklog
	}
	c.AcceptRate = cfg.Upgrader.AcceptRate
	if cfg.Upgrader.AcceptBurst > 0 {
		c.AcceptBurst = cfg.Upgrader.AcceptBurst
	}
	return c
}

// ============================================================================
//                              选项
// ============================================================================

type options struct {
	cfg        Config
	negotiator pkgif.Negotiator
}

// Option 驱动选项
type Option func(*options)

// WithConfig 设置驱动配置
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithNegotiator 替换协商原语（默认 Multistream）
func WithNegotiator(n pkgif.Negotiator) Option {
	return func(o *options) {
		if n != nil {
			o.negotiator = n
		}
	}
}

// WithNegotiateTimeout 设置拨号协商超时
func WithNegotiateTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.NegotiateTimeout = d
	}
}

// WithAcceptTimeout 设置入站升级超时
func WithAcceptTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.AcceptTimeout = d
	}
}

// WithMaxInboundUpgrades 设置入站并发升级上限
func WithMaxInboundUpgrades(n int) Option {
	return func(o *options) {
		o.cfg.MaxInboundUpgrades = n
	}
}

func buildOptions(opts []Option) options {
	o := options{cfg: NewConfig(), negotiator: Multistream{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.MaxInboundUpgrades <= 0 {
		o.cfg.MaxInboundUpgrades = 1
	}
	if o.cfg.AcceptBacklog < 0 {
		o.cfg.AcceptBacklog = 0
	}
	return o
}
