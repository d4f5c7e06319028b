package memory

import (
	"net"
	"strconv"

	ma "github.com/multiformats/go-multiaddr"

	swarmma "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
)

// Addr 内存地址，实现 net.Addr
type Addr struct {
	Port uint64
}

// Network 返回 "memory"
func (a Addr) Network() string {
	return "memory"
}

func (a Addr) String() string {
	return strconv.FormatUint(a.Port, 10)
}

// Multiaddr 返回 /memory/<port>
func (a Addr) Multiaddr() ma.Multiaddr {
	return swarmma.Memory(a.Port)
}

// Conn 内存连接
//
// 读写与截止时间由 net.Pipe 提供，地址替换为内存地址。
type Conn struct {
	net.Conn
	local  Addr
	remote Addr
}

var _ net.Conn = (*Conn)(nil)

// LocalAddr 本地地址
func (c *Conn) LocalAddr() net.Addr {
	return c.local
}

// RemoteAddr 远端地址
func (c *Conn) RemoteAddr() net.Addr {
	return c.remote
}

// LocalMultiaddr 本地多地址
func (c *Conn) LocalMultiaddr() ma.Multiaddr {
	return c.local.Multiaddr()
}

// RemoteMultiaddr 远端多地址
func (c *Conn) RemoteMultiaddr() ma.Multiaddr {
	return c.remote.Multiaddr()
}
