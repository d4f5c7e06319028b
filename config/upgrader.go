package config

import (
	"errors"
	"time"
)

// UpgraderConfig 升级器配置
//
// 控制监听器对入站连接的并发协商与速率。
type UpgraderConfig struct {
	// MaxInboundUpgrades 同时进行协商/升级的入站连接上限
	MaxInboundUpgrades int `json:"max_inbound_upgrades"`

	// AcceptBacklog 已完成升级、等待 Accept 的连接队列长度
	AcceptBacklog int `json:"accept_backlog"`

	// AcceptRate 每秒允许开始升级的入站连接数，0 表示不限速
	AcceptRate float64 `json:"accept_rate"`

	// AcceptBurst 速率限制的突发量
	AcceptBurst int `json:"accept_burst"`

	// AcceptTimeout 入站连接从接受到升级完成的超时
	AcceptTimeout Duration `json:"accept_timeout"`
}

// DefaultUpgraderConfig 返回默认升级器配置
func DefaultUpgraderConfig() UpgraderConfig {
	return UpgraderConfig{
		MaxInboundUpgrades: 64,
		AcceptBacklog:      128,
		AcceptRate:         0,
		AcceptBurst:        32,
		AcceptTimeout:      Duration(60 * time.Second),
	}
}

// Validate 验证升级器配置
func (c UpgraderConfig) Validate() error {
	if c.MaxInboundUpgrades <= 0 {
		return errors.New("max inbound upgrades must be positive")
	}
	if c.AcceptBacklog < 0 {
		return errors.New("accept backlog must not be negative")
	}
	if c.AcceptRate < 0 {
		return errors.New("accept rate must not be negative")
	}
	if c.AcceptRate > 0 && c.AcceptBurst <= 0 {
		return errors.New("accept burst must be positive when rate limiting is enabled")
	}
	if c.AcceptTimeout <= 0 {
		return errors.New("accept timeout must be positive")
	}
	return nil
}
