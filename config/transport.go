package config

import (
	"errors"
	"time"
)

// TransportConfig 传输层配置
//
// 配置节点支持的传输及其参数：
//   - QUIC: /ip4/.../udp/.../quic-v1，单个双向流作为原始字节流
//   - TCP: /ip4/.../tcp/...
//   - WebSocket: /ip4/.../tcp/.../ws
//   - Memory: /memory/<port>，进程内传输
//
// 启用的传输按 QUIC、TCP、WebSocket、Memory 的顺序组成回退链。
type TransportConfig struct {
	// QUIC 配置
	EnableQUIC bool       `json:"enable_quic"`
	QUIC       QUICConfig `json:"quic,omitempty"`

	// TCP 配置
	EnableTCP bool      `json:"enable_tcp"`
	TCP       TCPConfig `json:"tcp,omitempty"`

	// WebSocket 配置
	EnableWebSocket bool            `json:"enable_websocket"`
	WebSocket       WebSocketConfig `json:"websocket,omitempty"`

	// EnableMemory 是否启用进程内传输
	EnableMemory bool `json:"enable_memory"`

	// DialTimeout 拨号超时（仅底层传输建连阶段）
	DialTimeout Duration `json:"dial_timeout"`
}

// QUICConfig QUIC 传输配置
type QUICConfig struct {
	// MaxIdleTimeout 最大空闲超时
	MaxIdleTimeout Duration `json:"max_idle_timeout"`

	// HandshakeIdleTimeout 握手空闲超时
	HandshakeIdleTimeout Duration `json:"handshake_idle_timeout"`

	// KeepAlivePeriod KeepAlive 周期，0 表示禁用
	KeepAlivePeriod Duration `json:"keep_alive_period"`
}

// TCPConfig TCP 传输配置
type TCPConfig struct {
	// KeepAlive 是否启用 TCP KeepAlive
	KeepAlive bool `json:"keep_alive"`

	// KeepAlivePeriod KeepAlive 周期
	KeepAlivePeriod Duration `json:"keep_alive_period"`

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool `json:"no_delay"`
}

// WebSocketConfig WebSocket 传输配置
type WebSocketConfig struct {
	// ReadBufferSize 读缓冲区大小
	ReadBufferSize int `json:"read_buffer_size,omitempty"`

	// WriteBufferSize 写缓冲区大小
	WriteBufferSize int `json:"write_buffer_size,omitempty"`

	// HandshakeTimeout 握手超时
	HandshakeTimeout Duration `json:"handshake_timeout"`

	// EnableCompression 是否启用压缩
	EnableCompression bool `json:"enable_compression"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		// ════════════════════════════════════════════════════════════════════
		// QUIC 配置（回退链第一位）
		// ════════════════════════════════════════════════════════════════════
		EnableQUIC: true,
		QUIC: QUICConfig{
			MaxIdleTimeout:       Duration(30 * time.Second), // 空闲超时：30 秒
			HandshakeIdleTimeout: Duration(5 * time.Second),  // 握手空闲超时：5 秒
			KeepAlivePeriod:      Duration(15 * time.Second), // KeepAlive 间隔：15 秒
		},

		// ════════════════════════════════════════════════════════════════════
		// TCP 配置
		// ════════════════════════════════════════════════════════════════════
		EnableTCP: true,
		TCP: TCPConfig{
			KeepAlive:       true,
			KeepAlivePeriod: Duration(15 * time.Second),
			NoDelay:         true, // 禁用 Nagle 算法：减少协商往返延迟
		},

		// ════════════════════════════════════════════════════════════════════
		// WebSocket 配置
		// ════════════════════════════════════════════════════════════════════
		EnableWebSocket: false, // 默认禁用：仅浏览器或代理场景需要
		WebSocket: WebSocketConfig{
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
			HandshakeTimeout:  Duration(10 * time.Second),
			EnableCompression: false,
		},

		// ════════════════════════════════════════════════════════════════════
		// Memory 配置（进程内，不占用系统资源）
		// ════════════════════════════════════════════════════════════════════
		EnableMemory: true,

		DialTimeout: Duration(30 * time.Second),
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	if !c.EnableQUIC && !c.EnableTCP && !c.EnableWebSocket && !c.EnableMemory {
		return errors.New("at least one transport must be enabled")
	}

	if c.EnableQUIC {
		if c.QUIC.MaxIdleTimeout <= 0 {
			return errors.New("QUIC max idle timeout must be positive")
		}
		if c.QUIC.HandshakeIdleTimeout <= 0 {
			return errors.New("QUIC handshake idle timeout must be positive")
		}
		if c.QUIC.KeepAlivePeriod < 0 {
			return errors.New("QUIC keep alive period must not be negative")
		}
	}

	if c.EnableTCP && c.TCP.KeepAlive && c.TCP.KeepAlivePeriod <= 0 {
		return errors.New("TCP keep alive period must be positive when enabled")
	}

	if c.EnableWebSocket {
		if c.WebSocket.ReadBufferSize <= 0 {
			return errors.New("WebSocket read buffer size must be positive")
		}
		if c.WebSocket.WriteBufferSize <= 0 {
			return errors.New("WebSocket write buffer size must be positive")
		}
		if c.WebSocket.HandshakeTimeout <= 0 {
			return errors.New("WebSocket handshake timeout must be positive")
		}
	}

	if c.DialTimeout <= 0 {
		return errors.New("dial timeout must be positive")
	}

	return nil
}

// WithQUIC 设置是否启用 QUIC
func (c TransportConfig) WithQUIC(enabled bool) TransportConfig {
	c.EnableQUIC = enabled
	return c
}

// WithTCP 设置是否启用 TCP
func (c TransportConfig) WithTCP(enabled bool) TransportConfig {
	c.EnableTCP = enabled
	return c
}

// WithWebSocket 设置是否启用 WebSocket
func (c TransportConfig) WithWebSocket(enabled bool) TransportConfig {
	c.EnableWebSocket = enabled
	return c
}

// WithMemory 设置是否启用进程内传输
func (c TransportConfig) WithMemory(enabled bool) TransportConfig {
	c.EnableMemory = enabled
	return c
}

// WithDialTimeout 设置拨号超时
func (c TransportConfig) WithDialTimeout(timeout time.Duration) TransportConfig {
	c.DialTimeout = Duration(timeout)
	return c
}
