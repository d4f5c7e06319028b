// Package types 定义 go-swarm 的公共数据结构
package types

// ============================================================================
//                              Direction - 连接方向
// ============================================================================

// Direction 连接方向
//
// 升级需要知道自己处于发起方还是接收方（例如 Noise 握手角色、yamux 客户端/服务端）。
type Direction int

const (
	// DirUnknown 未知方向
	DirUnknown Direction = iota
	// DirInbound 入站连接（listen 接受的连接，协商时作为 listener）
	DirInbound
	// DirOutbound 出站连接（dial 建立的连接，协商时作为 dialer）
	DirOutbound
)

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirInbound:
		return "inbound"
	case DirOutbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// IsInitiator 是否为发起方
func (d Direction) IsInitiator() bool {
	return d == DirOutbound
}
