package upgrader

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

func exact(names ...types.ProtocolID) []pkgif.Candidate {
	out := make([]pkgif.Candidate, len(names))
	for i, n := range names {
		out[i] = pkgif.Candidate{Name: n}
	}
	return out
}

// negotiate 在 net.Pipe 两端执行协商
func negotiate(t *testing.T, dialer, listener []pkgif.Candidate) (int, error, int, error) {
	t.Helper()

	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		di, li     int
		dErr, lErr error
		g          errgroup.Group
	)
	g.Go(func() error {
		di, dErr = Multistream{}.SelectAsDialer(ctx, a, dialer)
		if dErr != nil {
			a.Close()
		}
		return nil
	})
	g.Go(func() error {
		li, lErr = Multistream{}.SelectAsListener(ctx, b, listener)
		if lErr != nil {
			b.Close()
		}
		return nil
	})
	require.NoError(t, g.Wait())
	return di, dErr, li, lErr
}

func TestMultistream_Select(t *testing.T) {
	di, dErr, li, lErr := negotiate(t,
		exact("/x/1.0.0", "/y/1.0.0"),
		exact("/y/1.0.0"),
	)
	require.NoError(t, dErr)
	require.NoError(t, lErr)
	assert.Equal(t, 1, di)
	assert.Equal(t, 0, li)
}

func TestMultistream_DialerPreferenceWins(t *testing.T) {
	di, dErr, li, lErr := negotiate(t,
		exact("/a", "/b"),
		exact("/b", "/a"),
	)
	require.NoError(t, dErr)
	require.NoError(t, lErr)
	assert.Equal(t, 0, di)
	assert.Equal(t, 1, li, "接收方接受发起方第一个可用的提议")
}

func TestMultistream_NoCommonProtocol(t *testing.T) {
	_, dErr, _, lErr := negotiate(t, exact("/a"), exact("/b"))
	assert.ErrorIs(t, dErr, ErrNoCommonProtocol)
	assert.Error(t, lErr)
}

func TestMultistream_CustomMatch(t *testing.T) {
	prefix := func(local, remote types.ProtocolID) bool {
		return strings.HasPrefix(string(remote), string(local))
	}
	listener := []pkgif.Candidate{{Name: "/echo/1", Match: prefix}}

	di, dErr, li, lErr := negotiate(t, exact("/echo/1.2.0"), listener)
	require.NoError(t, dErr)
	require.NoError(t, lErr)
	assert.Equal(t, 0, di)
	assert.Equal(t, 0, li)
}

func TestMultistream_DuplicateNames(t *testing.T) {
	_, dErr, li, lErr := negotiate(t, exact("/same"), exact("/same", "/same"))
	require.NoError(t, dErr)
	require.NoError(t, lErr)
	assert.Equal(t, 0, li, "同名候选取第一个")
}

func TestMultistream_NoCandidates(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	_, err := Multistream{}.SelectAsDialer(context.Background(), a, nil)
	assert.ErrorIs(t, err, types.ErrNoProtocols)
	_, err = Multistream{}.SelectAsListener(context.Background(), b, nil)
	assert.ErrorIs(t, err, types.ErrNoProtocols)
}

func TestMultistream_DeadlineFromContext(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 对端不响应，截止时间到达后协商失败
	_, err := Multistream{}.SelectAsListener(ctx, b, exact("/a"))
	require.Error(t, err)

	// 截止时间在返回后被清除
	go func() { _, _ = a.Write([]byte("x")) }()
	buf := make([]byte, 1)
	_, err = io.ReadFull(b, buf)
	assert.NoError(t, err)
}
