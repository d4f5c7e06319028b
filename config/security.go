package config

import (
	"errors"
	"time"
)

// SecurityConfig 安全升级配置
//
// 配置节点在协商中通告的安全协议：
//   - Noise: /noise，XX 握手，临时静态密钥
//   - PlainText: /plaintext/1.0.0，不加密（仅测试或受信网络）
//
// 两者都启用时按 Noise、PlainText 的顺序通告。
type SecurityConfig struct {
	// EnableNoise 是否启用 Noise
	EnableNoise bool `json:"enable_noise"`

	// EnablePlaintext 是否启用 PlainText
	EnablePlaintext bool `json:"enable_plaintext"`

	// NegotiateTimeout 单个连接的协商加升级超时
	NegotiateTimeout Duration `json:"negotiate_timeout"`

	// Noise Noise 配置
	Noise NoiseConfig `json:"noise,omitempty"`
}

// NoiseConfig Noise 配置
type NoiseConfig struct {
	// HandshakeTimeout 握手超时
	HandshakeTimeout Duration `json:"handshake_timeout,omitempty"`
}

// DefaultSecurityConfig 返回默认安全配置
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		// ════════════════════════════════════════════════════════════════════
		// 安全协议启用配置
		// ════════════════════════════════════════════════════════════════════
		EnableNoise:     true,
		EnablePlaintext: false, // 默认禁用：明文仅用于测试

		// ════════════════════════════════════════════════════════════════════
		// 协商配置
		// ════════════════════════════════════════════════════════════════════
		NegotiateTimeout: Duration(60 * time.Second), // 协商超时：60 秒，包括多轮协议协商

		Noise: NoiseConfig{
			HandshakeTimeout: Duration(30 * time.Second),
		},
	}
}

// Validate 验证安全配置
func (c SecurityConfig) Validate() error {
	if !c.EnableNoise && !c.EnablePlaintext {
		return errors.New("at least one security protocol must be enabled")
	}

	if c.NegotiateTimeout <= 0 {
		return errors.New("negotiate timeout must be positive")
	}

	if c.EnableNoise && c.Noise.HandshakeTimeout <= 0 {
		return errors.New("noise handshake timeout must be positive")
	}

	return nil
}

// WithNoise 设置是否启用 Noise
func (c SecurityConfig) WithNoise(enabled bool) SecurityConfig {
	c.EnableNoise = enabled
	return c
}

// WithPlaintext 设置是否启用 PlainText
func (c SecurityConfig) WithPlaintext(enabled bool) SecurityConfig {
	c.EnablePlaintext = enabled
	return c
}

// WithNegotiateTimeout 设置协商超时
func (c SecurityConfig) WithNegotiateTimeout(timeout time.Duration) SecurityConfig {
	c.NegotiateTimeout = Duration(timeout)
	return c
}
