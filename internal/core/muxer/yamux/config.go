// Package yamux 提供基于 yamux 的多路复用升级
package yamux

import (
	"io"
	"time"

	"github.com/hashicorp/yamux"
)

// Config yamux 配置
type Config struct {
	AcceptBacklog          int
	EnableKeepAlive        bool
	KeepAliveInterval      time.Duration
	ConnectionWriteTimeout time.Duration
	MaxStreamWindowSize    uint32
	StreamOpenTimeout      time.Duration
	StreamCloseTimeout     time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		AcceptBacklog:          256,
		EnableKeepAlive:        true,
		KeepAliveInterval:      30 * time.Second,
		ConnectionWriteTimeout: 10 * time.Second,
		MaxStreamWindowSize:    256 * 1024, // 256 KB
		StreamOpenTimeout:      75 * time.Second,
		StreamCloseTimeout:     5 * time.Minute,
	}
}

// yamuxConfig 转换为 yamux.Config
//
// 非法值回退到 yamux 默认值，日志输出被丢弃。
func (c Config) yamuxConfig() *yamux.Config {
	yc := yamux.DefaultConfig()
	yc.LogOutput = io.Discard

	if c.AcceptBacklog > 0 {
		yc.AcceptBacklog = c.AcceptBacklog
	}
	yc.EnableKeepAlive = c.EnableKeepAlive
	if c.KeepAliveInterval > 0 {
		yc.KeepAliveInterval = c.KeepAliveInterval
	}
	if c.ConnectionWriteTimeout > 0 {
		yc.ConnectionWriteTimeout = c.ConnectionWriteTimeout
	}
	if c.MaxStreamWindowSize >= 256*1024 {
		yc.MaxStreamWindowSize = c.MaxStreamWindowSize
	}
	if c.StreamOpenTimeout > 0 {
		yc.StreamOpenTimeout = c.StreamOpenTimeout
	}
	if c.StreamCloseTimeout > 0 {
		yc.StreamCloseTimeout = c.StreamCloseTimeout
	}
	return yc
}
