package plaintext

import (
	"context"
	"io"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ProtocolID 协商使用的协议名
const ProtocolID types.ProtocolID = "/plaintext/1.0.0"

// Upgrade 恒等升级
//
// C 为原始连接类型，升级结果与输入是同一个值。
type Upgrade[C io.ReadWriteCloser] struct{}

// 确保实现接口
var _ pkgif.ConnectionUpgrade[io.ReadWriteCloser, types.ProtocolID, io.ReadWriteCloser] = Upgrade[io.ReadWriteCloser]{}

// New 创建恒等升级
func New[C io.ReadWriteCloser]() Upgrade[C] {
	return Upgrade[C]{}
}

// Protocols 返回 [/plaintext/1.0.0]
func (Upgrade[C]) Protocols() []pkgif.Protocol[types.ProtocolID] {
	return []pkgif.Protocol[types.ProtocolID]{{Name: ProtocolID, ID: ProtocolID}}
}

// Upgrade 原样返回连接
func (Upgrade[C]) Upgrade(_ context.Context, conn C, _ types.ProtocolID, _ types.Direction) (C, error) {
	return conn, nil
}
