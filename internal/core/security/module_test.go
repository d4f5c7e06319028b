package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/security/noise"
	"github.com/dep2p/go-swarm/internal/core/security/plaintext"
	"github.com/dep2p/go-swarm/internal/core/transport"
	"github.com/dep2p/go-swarm/pkg/types"
)

func names(u *Upgrade) []types.ProtocolID {
	var out []types.ProtocolID
	for _, p := range u.Protocols() {
		out = append(out, p.Name)
	}
	return out
}

func TestModule(t *testing.T) {
	var up *Upgrade

	app := fxtest.New(t,
		fx.Supply(config.NewConfig()),
		Module(),
		fx.Populate(&up),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, up)
	// 默认只启用 Noise
	assert.Equal(t, []types.ProtocolID{noise.ProtocolID}, names(up))
}

func TestModule_NoiseFirst(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Security = cfg.Security.WithPlaintext(true)

	var up *Upgrade

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&up),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, []types.ProtocolID{noise.ProtocolID, plaintext.ProtocolID}, names(up))
}

func TestModule_PlaintextOnly(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Security = cfg.Security.WithNoise(false).WithPlaintext(true)

	var (
		up *Upgrade
		n  *noise.Upgrade[transport.RawConn]
	)

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&up, &n),
	)
	defer app.RequireStart().RequireStop()

	assert.Nil(t, n)
	assert.Equal(t, []types.ProtocolID{plaintext.ProtocolID}, names(up))
}

func TestConfigFromUnified(t *testing.T) {
	got := ConfigFromUnified(nil)
	assert.True(t, got.EnableNoise)
	assert.False(t, got.EnablePlaintext)
	assert.Greater(t, got.Noise.HandshakeTimeout.Seconds(), 0.0)
}
