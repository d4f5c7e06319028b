package upgrader

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// tagged 测试升级的输出，记录选中的协议和方向
type tagged struct {
	io.ReadWriteCloser
	proto types.ProtocolID
	dir   types.Direction
}

// named 通告固定协议名的测试升级
//
// 不读写连接，只把原始连接包装为 *tagged。
type named[C io.ReadWriteCloser] struct {
	names []types.ProtocolID
	fail  error
	calls atomic.Int32
}

func newNamed[C io.ReadWriteCloser](names ...types.ProtocolID) *named[C] {
	return &named[C]{names: names}
}

func (n *named[C]) Protocols() []pkgif.Protocol[types.ProtocolID] {
	out := make([]pkgif.Protocol[types.ProtocolID], len(n.names))
	for i, name := range n.names {
		out[i] = pkgif.Protocol[types.ProtocolID]{Name: name, ID: name}
	}
	return out
}

func (n *named[C]) Upgrade(_ context.Context, conn C, id types.ProtocolID, dir types.Direction) (*tagged, error) {
	n.calls.Add(1)
	if n.fail != nil {
		return nil, n.fail
	}
	return &tagged{ReadWriteCloser: conn, proto: id, dir: dir}, nil
}

// dialAccept 并发执行 Await 和 Accept
//
// 双方的连接类型可以不同，例如监听方使用 Or 升级而拨号方只支持其中一侧。
func dialAccept[O, P any](t *testing.T, l pkgif.Listener[O], fut pkgif.Future[P]) (server O, serverErr error, client P, clientErr error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		server, serverErr = l.Accept(ctx)
		return nil
	})
	g.Go(func() error {
		client, clientErr = fut.Await(ctx)
		return nil
	})
	require.NoError(t, g.Wait())
	return server, serverErr, client, clientErr
}
