package transport

import (
	manet "github.com/multiformats/go-multiaddr/net"

	"github.com/dep2p/go-swarm/internal/core/transport/memory"
	"github.com/dep2p/go-swarm/internal/core/transport/quic"
	"github.com/dep2p/go-swarm/internal/core/transport/tcp"
	"github.com/dep2p/go-swarm/internal/core/transport/websocket"
	"github.com/dep2p/go-swarm/pkg/lib/either"
)

// ============================================================================
//                              默认回退链
// ============================================================================

type (
	// wsOrMemory WebSocket ∨ Memory
	wsOrMemory = either.Conn[*websocket.Conn, *memory.Conn]
	// tcpOrRest TCP ∨ WebSocket ∨ Memory
	tcpOrRest = either.Conn[manet.Conn, wsOrMemory]
)

// RawConn 默认回退链产出的原始连接
//
// 标签路径标识来源：First 为 QUIC；Second.First 为 TCP；
// Second.Second.First 为 WebSocket；Second.Second.Second 为 Memory。
type RawConn = either.Conn[*quic.Conn, tcpOrRest]

// Stack 默认回退链 QUIC ∨ TCP ∨ WebSocket ∨ Memory
type Stack = OrTransport[*quic.Conn, tcpOrRest]

// NewStack 组合默认回退链
//
// 未启用或为 nil 的传输以 Denied 占位，链的类型不随配置变化。
func NewStack(cfg Config, q *quic.Transport, t *tcp.Transport, w *websocket.Transport, m *memory.Transport) *Stack {
	return Or[*quic.Conn, tcpOrRest](
		When[*quic.Conn](cfg.EnableQUIC && q != nil, q),
		Or[manet.Conn, wsOrMemory](
			When[manet.Conn](cfg.EnableTCP && t != nil, t),
			Or[*websocket.Conn, *memory.Conn](
				When[*websocket.Conn](cfg.EnableWebSocket && w != nil, w),
				When[*memory.Conn](cfg.EnableMemory && m != nil, m),
			),
		),
	)
}

// Source 返回原始连接来自哪个传输
func Source(c RawConn) string {
	if _, ok := c.First(); ok {
		return "quic"
	}
	rest, _ := c.Second()
	if _, ok := rest.First(); ok {
		return "tcp"
	}
	last, _ := rest.Second()
	if _, ok := last.First(); ok {
		return "websocket"
	}
	if _, ok := last.Second(); ok {
		return "memory"
	}
	return "unknown"
}
