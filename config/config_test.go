package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.True(t, cfg.Transport.EnableQUIC)
	assert.True(t, cfg.Transport.EnableTCP)
	assert.True(t, cfg.Security.EnableNoise)
	assert.False(t, cfg.Security.EnablePlaintext)
}

// TestTransportConfig 测试传输配置
func TestTransportConfig(t *testing.T) {
	t.Run("Validate_NoneEnabled", func(t *testing.T) {
		cfg := DefaultTransportConfig().
			WithQUIC(false).WithTCP(false).WithWebSocket(false).WithMemory(false)
		assert.Error(t, cfg.Validate())
	})

	t.Run("Validate_MemoryOnly", func(t *testing.T) {
		cfg := DefaultTransportConfig().
			WithQUIC(false).WithTCP(false).WithWebSocket(false).WithMemory(true)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate_WebSocketBuffers", func(t *testing.T) {
		cfg := DefaultTransportConfig().WithWebSocket(true)
		cfg.WebSocket.ReadBufferSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("WithDialTimeout", func(t *testing.T) {
		cfg := DefaultTransportConfig().WithDialTimeout(5 * time.Second)
		assert.Equal(t, 5*time.Second, cfg.DialTimeout.Duration())

		cfg = cfg.WithDialTimeout(0)
		assert.Error(t, cfg.Validate())
	})
}

// TestSecurityConfig 测试安全配置
func TestSecurityConfig(t *testing.T) {
	t.Run("Validate_NoneEnabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig().WithNoise(false).WithPlaintext(false)
		assert.Error(t, cfg.Validate())
	})

	t.Run("Validate_PlaintextOnly", func(t *testing.T) {
		cfg := DefaultSecurityConfig().WithNoise(false).WithPlaintext(true)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate_NegotiateTimeout", func(t *testing.T) {
		cfg := DefaultSecurityConfig().WithNegotiateTimeout(-time.Second)
		assert.Error(t, cfg.Validate())
	})
}

// TestMuxerConfig 测试多路复用配置
func TestMuxerConfig(t *testing.T) {
	cfg := DefaultMuxerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Yamux.MaxStreamWindowSize = 1024
	assert.Error(t, cfg.Validate())
}

// TestUpgraderConfig 测试升级器配置
func TestUpgraderConfig(t *testing.T) {
	cfg := DefaultUpgraderConfig()
	assert.NoError(t, cfg.Validate())

	cfg.AcceptRate = 10
	cfg.AcceptBurst = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultUpgraderConfig()
	cfg.MaxInboundUpgrades = 0
	assert.Error(t, cfg.Validate())
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"transport": {"enable_quic": false, "dial_timeout": "5s"},
		"security": {"enable_plaintext": true}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	assert.False(t, cfg.Transport.EnableQUIC)
	assert.True(t, cfg.Transport.EnableTCP, "未出现的字段保留默认值")
	assert.Equal(t, 5*time.Second, cfg.Transport.DialTimeout.Duration())
	assert.True(t, cfg.Security.EnablePlaintext)

	_, err = FromJSON([]byte(`{"transport": {"dial_timeout": "soon"}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"security": {"enable_noise": false}}`))
	assert.Error(t, err, "禁用所有安全协议应校验失败")
}

// TestToJSON_RoundTrip 测试序列化后可重新加载
func TestToJSON_RoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Upgrader.MaxInboundUpgrades = 7

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dial_timeout": "30s"`)

	path := filepath.Join(t.TempDir(), "swarm.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestValidateAndFix 测试自动修复
func TestValidateAndFix(t *testing.T) {
	cfg := NewConfig()
	cfg.Transport = cfg.Transport.WithQUIC(false).WithTCP(false).WithMemory(false)
	cfg.Security = cfg.Security.WithNoise(false)
	cfg.Upgrader.AcceptTimeout = 0

	fixed, err := ValidateAndFix(cfg)
	require.NoError(t, err)
	assert.True(t, fixed.Transport.EnableTCP)
	assert.True(t, fixed.Security.EnableNoise)
	assert.Equal(t, DefaultUpgraderConfig().AcceptTimeout, fixed.Upgrader.AcceptTimeout)

	fixed, err = ValidateAndFix(nil)
	require.NoError(t, err)
	assert.NotNil(t, fixed)
}

// TestValidateAll 测试 nil 配置
func TestValidateAll(t *testing.T) {
	assert.Error(t, ValidateAll(nil))
	assert.NoError(t, ValidateAll(NewConfig()))
	assert.Panics(t, func() { MustValidate(nil) })
}

// TestCloneConfig 测试深拷贝
func TestCloneConfig(t *testing.T) {
	cfg := NewConfig()
	clone := CloneConfig(cfg)
	clone.Transport.EnableQUIC = false

	assert.True(t, cfg.Transport.EnableQUIC)
	assert.Nil(t, CloneConfig(nil))
}

// TestDuration_OrDefault 测试默认值回退
func TestDuration_OrDefault(t *testing.T) {
	assert.Equal(t, time.Second, Duration(0).OrDefault(time.Second))
	assert.Equal(t, 2*time.Second, Duration(2*time.Second).OrDefault(time.Second))
}

// TestDuration_UnmarshalJSON 测试时长解析
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{`"1m30s"`, 90 * time.Second, false},
		{`1000000`, time.Millisecond, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"-1s"`, 0, true},
		{`"soon"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}
