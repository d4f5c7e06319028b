package interfaces_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

func TestFutureFunc_Await(t *testing.T) {
	calls := 0
	f := pkgif.FutureFunc[int](func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	assert.Equal(t, 0, calls, "构造 Future 不应执行")

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestReady(t *testing.T) {
	boom := errors.New("boom")
	_, err := pkgif.Ready(0, boom).Await(context.Background())
	assert.ErrorIs(t, err, boom)

	v, err := pkgif.Ready("ok", nil).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCandidate_Matches(t *testing.T) {
	exact := pkgif.Candidate{Name: "/noise"}
	assert.True(t, exact.Matches("/noise"))
	assert.False(t, exact.Matches("/noise/2"))

	prefix := pkgif.Candidate{
		Name: "/yamux/",
		Match: func(local, remote types.ProtocolID) bool {
			return len(remote) >= len(local) && remote[:len(local)] == local
		},
	}
	assert.True(t, prefix.Matches("/yamux/1.0.0"))
	assert.False(t, prefix.Matches("/mplex/6.7.0"))
}
