package multiaddr

import (
	ma "github.com/multiformats/go-multiaddr"
)

// HasShape 判断地址的协议序列是否恰好为 codes
func HasShape(addr ma.Multiaddr, codes ...int) bool {
	if addr == nil {
		return false
	}
	protos := addr.Protocols()
	if len(protos) != len(codes) {
		return false
	}
	for i, p := range protos {
		if p.Code != codes[i] {
			return false
		}
	}
	return true
}

func isIP(code int) bool {
	return code == ma.P_IP4 || code == ma.P_IP6
}

// ipShape 判断 /ip{4,6}/<ip>/<rest...>
func ipShape(addr ma.Multiaddr, rest ...int) bool {
	if addr == nil {
		return false
	}
	protos := addr.Protocols()
	if len(protos) != len(rest)+1 || !isIP(protos[0].Code) {
		return false
	}
	return HasShape(addr, append([]int{protos[0].Code}, rest...)...)
}

// IsTCP /ip{4,6}/<ip>/tcp/<port>
func IsTCP(addr ma.Multiaddr) bool {
	return ipShape(addr, ma.P_TCP)
}

// IsWebSocket /ip{4,6}/<ip>/tcp/<port>/ws
func IsWebSocket(addr ma.Multiaddr) bool {
	return ipShape(addr, ma.P_TCP, ma.P_WS)
}

// IsQUIC /ip{4,6}/<ip>/udp/<port>/quic-v1
func IsQUIC(addr ma.Multiaddr) bool {
	return ipShape(addr, ma.P_UDP, ma.P_QUIC_V1)
}

// IsMemory /memory/<port>
func IsMemory(addr ma.Multiaddr) bool {
	return HasShape(addr, P_MEMORY)
}
