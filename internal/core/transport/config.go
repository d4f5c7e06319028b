package transport

import (
	"time"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/transport/quic"
	"github.com/dep2p/go-swarm/internal/core/transport/tcp"
	"github.com/dep2p/go-swarm/internal/core/transport/websocket"
)

// Config 传输层配置
type Config struct {
	// 协议开关
	EnableQUIC      bool
	EnableTCP       bool
	EnableWebSocket bool
	EnableMemory    bool

	QUIC      quic.Config
	TCP       tcp.Config
	WebSocket websocket.Config
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return ConfigFromUnified(config.NewConfig())
}

// ConfigFromUnified 从统一配置创建传输配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	tc := cfg.Transport
	dialTimeout := tc.DialTimeout.OrDefault(30 * time.Second)

	return Config{
		EnableQUIC:      tc.EnableQUIC,
		EnableTCP:       tc.EnableTCP,
		EnableWebSocket: tc.EnableWebSocket,
		EnableMemory:    tc.EnableMemory,

		QUIC: quic.Config{
			DialTimeout:          dialTimeout,
			MaxIdleTimeout:       tc.QUIC.MaxIdleTimeout.Duration(),
			HandshakeIdleTimeout: tc.QUIC.HandshakeIdleTimeout.Duration(),
			KeepAlivePeriod:      tc.QUIC.KeepAlivePeriod.Duration(),
			StreamAcceptTimeout:  quic.DefaultConfig().StreamAcceptTimeout,
		},
		TCP: tcp.Config{
			DialTimeout:     dialTimeout,
			KeepAlive:       tc.TCP.KeepAlive,
			KeepAlivePeriod: tc.TCP.KeepAlivePeriod.Duration(),
			NoDelay:         tc.TCP.NoDelay,
		},
		WebSocket: websocket.Config{
			DialTimeout:       dialTimeout,
			HandshakeTimeout:  tc.WebSocket.HandshakeTimeout.Duration(),
			ReadBufferSize:    tc.WebSocket.ReadBufferSize,
			WriteBufferSize:   tc.WebSocket.WriteBufferSize,
			EnableCompression: tc.WebSocket.EnableCompression,
		},
	}
}
