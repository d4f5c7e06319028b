package memory

import (
	"context"
	"math/rand/v2"
	"net"

	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/transport/memory")

// Transport 进程内传输
type Transport struct {
	hub *Hub
}

// 确保实现接口
var _ pkgif.Transport[*Conn] = (*Transport)(nil)

// New 在默认 Hub 上创建传输
func New() *Transport {
	return NewWithHub(defaultHub)
}

// NewWithHub 在指定 Hub 上创建传输
func NewWithHub(hub *Hub) *Transport {
	if hub == nil {
		hub = defaultHub
	}
	return &Transport{hub: hub}
}

// Hub 返回所属地址空间
func (t *Transport) Hub() *Hub {
	return t.hub
}

// Listen 监听 /memory/<port>
func (t *Transport) Listen(addr ma.Multiaddr) (pkgif.Listener[*Conn], error) {
	port, ok := swarmma.MemoryPort(addr)
	if !ok {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	l, err := t.hub.register(port, func(port uint64) *Listener {
		return newListener(t.hub, port)
	})
	if err != nil {
		return nil, types.NewTransportError("listen", addr, err)
	}

	logger.Debug("内存监听器已创建", "addr", l.Multiaddr())
	return l, nil
}

// Dial 准备拨号到 /memory/<port>
//
// 目标端口的查找推迟到 Await，因此先 Dial 后 Listen 也能成功。
func (t *Transport) Dial(addr ma.Multiaddr) (pkgif.Future[*Conn], error) {
	port, ok := swarmma.MemoryPort(addr)
	if !ok {
		return nil, types.NewAddrNotSupportedError(addr)
	}

	return pkgif.FutureFunc[*Conn](func(ctx context.Context) (*Conn, error) {
		return t.dial(ctx, addr, port)
	}), nil
}

func (t *Transport) dial(ctx context.Context, addr ma.Multiaddr, port uint64) (*Conn, error) {
	l := t.hub.lookup(port)
	if l == nil {
		return nil, types.NewTransportError("dial", addr, ErrConnectionRefused)
	}

	local := Addr{Port: rand.Uint64()}
	remote := Addr{Port: port}

	a, b := net.Pipe()
	client := &Conn{Conn: a, local: local, remote: remote}
	server := &Conn{Conn: b, local: remote, remote: local}

	select {
	case l.incoming <- server:
		return client, nil
	case <-l.done:
		_ = a.Close()
		_ = b.Close()
		return nil, types.NewTransportError("dial", addr, ErrConnectionRefused)
	case <-ctx.Done():
		_ = a.Close()
		_ = b.Close()
		return nil, types.NewTransportError("dial", addr, ctx.Err())
	}
}
