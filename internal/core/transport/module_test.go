package transport

import (
	"testing"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-swarm/config"
	"github.com/dep2p/go-swarm/internal/core/transport/memory"
	"github.com/dep2p/go-swarm/internal/core/transport/quic"
	"github.com/dep2p/go-swarm/internal/core/transport/tcp"
	"github.com/dep2p/go-swarm/pkg/types"
)

func TestModule_MemoryOnly(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Transport = cfg.Transport.WithQUIC(false).WithTCP(false)

	var (
		stack *Stack
		q     *quic.Transport
		tc    *tcp.Transport
		m     *memory.Transport
	)

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&stack, &q, &tc, &m),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, stack)
	assert.Nil(t, q)
	assert.Nil(t, tc)
	assert.NotNil(t, m)

	// 未启用的传输由 Denied 占位
	_, err := stack.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0"))
	assert.True(t, types.IsAddressNotSupported(err))

	l, err := stack.Listen(ma.StringCast("/memory/0"))
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}

func TestModule_Defaults(t *testing.T) {
	var stack *Stack

	app := fxtest.New(t,
		fx.Supply(config.NewConfig()),
		Module(),
		fx.Populate(&stack),
	)
	app.RequireStart()

	l, err := stack.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0"))
	require.NoError(t, err)
	// 端口 0 被替换为实际端口
	assert.NotEqual(t, "/ip4/127.0.0.1/tcp/0", l.Multiaddr().String())
	assert.NoError(t, l.Close())

	app.RequireStop()
}

func TestConfigFromUnified(t *testing.T) {
	got := ConfigFromUnified(nil)
	assert.True(t, got.EnableTCP)
	assert.True(t, got.EnableMemory)
	assert.False(t, got.EnableWebSocket)
}
