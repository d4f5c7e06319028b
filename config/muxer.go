package config

import (
	"errors"
	"time"
)

// MuxerConfig 多路复用配置
type MuxerConfig struct {
	// Yamux yamux 配置
	Yamux YamuxConfig `json:"yamux"`
}

// YamuxConfig yamux 参数
type YamuxConfig struct {
	// AcceptBacklog 未被接受的入站流上限
	AcceptBacklog int `json:"accept_backlog"`

	// EnableKeepAlive 是否发送 keepalive ping
	EnableKeepAlive bool `json:"enable_keep_alive"`

	// KeepAliveInterval keepalive 间隔
	KeepAliveInterval Duration `json:"keep_alive_interval"`

	// ConnectionWriteTimeout 写超时
	ConnectionWriteTimeout Duration `json:"connection_write_timeout"`

	// MaxStreamWindowSize 单流接收窗口上限
	MaxStreamWindowSize uint32 `json:"max_stream_window_size"`

	// StreamOpenTimeout 打开流等待 ACK 的超时
	StreamOpenTimeout Duration `json:"stream_open_timeout"`

	// StreamCloseTimeout 半关闭流的等待超时
	StreamCloseTimeout Duration `json:"stream_close_timeout"`
}

// DefaultMuxerConfig 返回默认多路复用配置
func DefaultMuxerConfig() MuxerConfig {
	return MuxerConfig{
		Yamux: YamuxConfig{
			AcceptBacklog:          256,
			EnableKeepAlive:        true,
			KeepAliveInterval:      Duration(30 * time.Second),
			ConnectionWriteTimeout: Duration(10 * time.Second),
			MaxStreamWindowSize:    256 * 1024, // 256 KB
			StreamOpenTimeout:      Duration(75 * time.Second),
			StreamCloseTimeout:     Duration(5 * time.Minute),
		},
	}
}

// Validate 验证多路复用配置
func (c MuxerConfig) Validate() error {
	y := c.Yamux
	if y.AcceptBacklog <= 0 {
		return errors.New("yamux accept backlog must be positive")
	}
	if y.EnableKeepAlive && y.KeepAliveInterval <= 0 {
		return errors.New("yamux keep alive interval must be positive when enabled")
	}
	if y.ConnectionWriteTimeout <= 0 {
		return errors.New("yamux connection write timeout must be positive")
	}
	// yamux 要求窗口不小于初始窗口 256 KB
	if y.MaxStreamWindowSize < 256*1024 {
		return errors.New("yamux max stream window size must be at least 256 KB")
	}
	return nil
}
