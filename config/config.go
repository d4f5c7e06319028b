// Package config 提供 go-swarm 的统一配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义：
//   - transport.go - 传输（QUIC/TCP/WebSocket/Memory）
//   - security.go  - 安全升级（Noise/PlainText）与协商超时
//   - muxer.go     - 多路复用（yamux）
//   - upgrader.go  - 入站升级并发与速率
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Transport.EnableWebSocket = true
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
//
// 内部组件不直接依赖本包的结构，而是通过各自的 ConfigFromUnified 派生配置。
package config

// Config 是 go-swarm 的完整配置结构
type Config struct {
	// Transport 传输层配置
	Transport TransportConfig `json:"transport"`

	// Security 安全升级配置
	Security SecurityConfig `json:"security"`

	// Muxer 多路复用配置
	Muxer MuxerConfig `json:"muxer"`

	// Upgrader 升级器配置
	Upgrader UpgraderConfig `json:"upgrader"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		Transport: DefaultTransportConfig(),
		Security:  DefaultSecurityConfig(),
		Muxer:     DefaultMuxerConfig(),
		Upgrader:  DefaultUpgraderConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Security.Validate(); err != nil {
		return err
	}
	if err := c.Muxer.Validate(); err != nil {
		return err
	}
	if err := c.Upgrader.Validate(); err != nil {
		return err
	}
	return nil
}
