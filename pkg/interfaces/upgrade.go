// Package interfaces 定义 go-swarm 公共接口
//
// 本文件定义 ConnectionUpgrade 契约。
package interfaces

import (
	"context"

	"github.com/dep2p/go-swarm/pkg/types"
)

// Protocol 一个可协商的协议变体
//
// Name 参与协商，ID 是只对产生它的升级有意义的不透明标识。
type Protocol[ID any] struct {
	Name types.ProtocolID
	ID   ID
}

// ConnectionUpgrade 定义连接升级契约
//
// C 为输入的原始连接类型，ID 为协议标识类型，O 为升级后的连接类型。
//
// 同一个升级值会被监听器用于每一个入站连接，实现必须可以被并发使用。
type ConnectionUpgrade[C, ID, O any] interface {
	// Protocols 返回愿意协商的协议列表
	//
	// 必须无副作用，可多次调用；每次返回新切片，顺序即偏好顺序。
	Protocols() []Protocol[ID]

	// Upgrade 在协商选中 id 后升级连接
	//
	// dir 表示本端是发起方（DirOutbound）还是接收方（DirInbound）。
	// 失败时 conn 的关闭由调用方负责。
	Upgrade(ctx context.Context, conn C, id ID, dir types.Direction) (O, error)
}
