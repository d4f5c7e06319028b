package muxer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/muxer/yamux"
)

func TestModule(t *testing.T) {
	var up *Upgrade

	app := fxtest.New(t,
		Module(),
		fx.Populate(&up),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, up)
	protos := up.Protocols()
	require.Len(t, protos, 1)
	assert.Equal(t, yamux.ProtocolID, protos[0].Name)
}

func TestModuleWithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Muxer.Yamux.AcceptBacklog = 32

	var up *Upgrade

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&up),
	)
	defer app.RequireStart().RequireStop()

	assert.NotNil(t, up)
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, yamux.DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Muxer.Yamux.MaxStreamWindowSize = 1 << 20
	got := ConfigFromUnified(cfg)
	assert.Equal(t, uint32(1<<20), got.MaxStreamWindowSize)
}
