package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，额外处理 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 未启用任何传输 -> 启用 TCP
//   - 未启用任何安全协议 -> 启用 Noise
//   - 超时或并发上限非正 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if !c.Transport.EnableQUIC && !c.Transport.EnableTCP &&
		!c.Transport.EnableWebSocket && !c.Transport.EnableMemory {
		c.Transport.EnableTCP = true
	}
	if c.Transport.DialTimeout <= 0 {
		c.Transport.DialTimeout = DefaultTransportConfig().DialTimeout
	}

	if !c.Security.EnableNoise && !c.Security.EnablePlaintext {
		c.Security.EnableNoise = true
	}
	if c.Security.NegotiateTimeout <= 0 {
		c.Security.NegotiateTimeout = DefaultSecurityConfig().NegotiateTimeout
	}
	if c.Security.EnableNoise && c.Security.Noise.HandshakeTimeout <= 0 {
		c.Security.Noise.HandshakeTimeout = DefaultSecurityConfig().Noise.HandshakeTimeout
	}

	if c.Upgrader.MaxInboundUpgrades <= 0 {
		c.Upgrader.MaxInboundUpgrades = DefaultUpgraderConfig().MaxInboundUpgrades
	}
	if c.Upgrader.AcceptTimeout <= 0 {
		c.Upgrader.AcceptTimeout = DefaultUpgraderConfig().AcceptTimeout
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config still invalid after fix: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，无效时 panic
//
// 仅用于初始化阶段的静态配置。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
}
