package multiaddr

import (
	"fmt"
	"net"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// HostPort 返回 IP 地址部分对应的 "host:port"
//
// 支持 /ip{4,6}/<ip>/{tcp,udp}/<port> 及其后缀（/ws、/quic-v1）。
func HostPort(addr ma.Multiaddr) (string, error) {
	base, _ := ma.SplitLast(addr)
	if IsWebSocket(addr) || IsQUIC(addr) {
		addr = base
	}
	_, host, err := manet.DialArgs(addr)
	if err != nil {
		return "", fmt.Errorf("dial args %s: %w", addr, err)
	}
	return host, nil
}

// FromNetAddr 把 net.Addr 转换为多地址并追加 suffix
//
// suffix 可以为 nil，例如 WebSocket 传输追加 /ws，QUIC 传输追加 /quic-v1。
func FromNetAddr(addr net.Addr, suffix ma.Multiaddr) (ma.Multiaddr, error) {
	m, err := manet.FromNetAddr(addr)
	if err != nil {
		return nil, err
	}
	if suffix != nil {
		m = m.Encapsulate(suffix)
	}
	return m, nil
}

// MustFromNetAddr 同 FromNetAddr，失败时返回 nil
func MustFromNetAddr(addr net.Addr, suffix ma.Multiaddr) ma.Multiaddr {
	m, err := FromNetAddr(addr, suffix)
	if err != nil {
		return nil
	}
	return m
}

var (
	// WS /ws 后缀
	WS = ma.StringCast("/ws")
	// QUICV1 /quic-v1 后缀
	QUICV1 = ma.StringCast("/quic-v1")
)
