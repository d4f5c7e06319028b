package upgrader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-swarm/config"
	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

func TestModule(t *testing.T) {
	var (
		cfg Config
		neg pkgif.Negotiator
	)

	app := fxtest.New(t,
		Module(),
		fx.Populate(&cfg, &neg),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, NewConfig(), cfg)
	assert.IsType(t, Multistream{}, neg)
}

func TestModuleWithConfig(t *testing.T) {
	unified := config.NewConfig()
	unified.Security = unified.Security.WithNegotiateTimeout(5 * time.Second)
	unified.Upgrader.MaxInboundUpgrades = 8
	unified.Upgrader.AcceptRate = 100

	var cfg Config

	app := fxtest.New(t,
		fx.Supply(unified),
		Module(),
		fx.Populate(&cfg),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, 5*time.Second, cfg.NegotiateTimeout)
	assert.Equal(t, 8, cfg.MaxInboundUpgrades)
	assert.Equal(t, 100.0, cfg.AcceptRate)

	opts := buildOptions(Options(cfg, Multistream{}))
	assert.Equal(t, cfg, opts.cfg)
}
