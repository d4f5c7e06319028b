package upgrader

import (
	"context"
	"io"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/either"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ============================================================================
//                              Choice
// ============================================================================

// Choice 两个升级的选择组合
//
// 协议列表为 first 的协议（标记 First）后接 second 的协议（标记 Second），
// 各自顺序保持不变。Upgrade 按标识的标记分派，另一侧不会被调用。
type Choice[C, IA, IB any, OA, OB io.ReadWriteCloser] struct {
	first  pkgif.ConnectionUpgrade[C, IA, OA]
	second pkgif.ConnectionUpgrade[C, IB, OB]
}

// Or 组合两个升级
func Or[C, IA, IB any, OA, OB io.ReadWriteCloser](
	first pkgif.ConnectionUpgrade[C, IA, OA],
	second pkgif.ConnectionUpgrade[C, IB, OB],
) *Choice[C, IA, IB, OA, OB] {
	return &Choice[C, IA, IB, OA, OB]{first: first, second: second}
}

// Protocols 返回组合后的协议列表
func (c *Choice[C, IA, IB, OA, OB]) Protocols() []pkgif.Protocol[either.Value[IA, IB]] {
	a := c.first.Protocols()
	b := c.second.Protocols()

	out := make([]pkgif.Protocol[either.Value[IA, IB]], 0, len(a)+len(b))
	for _, p := range a {
		out = append(out, pkgif.Protocol[either.Value[IA, IB]]{
			Name: p.Name,
			ID:   either.FirstValue[IA, IB](p.ID),
		})
	}
	for _, p := range b {
		out = append(out, pkgif.Protocol[either.Value[IA, IB]]{
			Name: p.Name,
			ID:   either.SecondValue[IA, IB](p.ID),
		})
	}
	return out
}

// Upgrade 按标识分派到对应的升级
func (c *Choice[C, IA, IB, OA, OB]) Upgrade(ctx context.Context, conn C, id either.Value[IA, IB], dir types.Direction) (either.Conn[OA, OB], error) {
	if a, ok := id.First(); ok {
		out, err := c.first.Upgrade(ctx, conn, a, dir)
		if err != nil {
			return either.Conn[OA, OB]{}, err
		}
		return either.FirstConn[OA, OB](out), nil
	}
	if b, ok := id.Second(); ok {
		out, err := c.second.Upgrade(ctx, conn, b, dir)
		if err != nil {
			return either.Conn[OA, OB]{}, err
		}
		return either.SecondConn[OA, OB](out), nil
	}
	return either.Conn[OA, OB]{}, either.ErrEmpty
}

// ============================================================================
//                              Disabled / When
// ============================================================================

// Disabled 不通告任何协议的升级
type Disabled[C, ID, O any] struct{}

// Protocols 返回空列表
func (Disabled[C, ID, O]) Protocols() []pkgif.Protocol[ID] {
	return nil
}

// Upgrade 总是失败
func (Disabled[C, ID, O]) Upgrade(context.Context, C, ID, types.Direction) (O, error) {
	var zero O
	return zero, ErrDisabled
}

// When 按开关返回 u 或 Disabled
//
// 禁用的一侧在组合中不通告协议，组合的类型不随配置变化。
func When[C, ID, O any](enabled bool, u pkgif.ConnectionUpgrade[C, ID, O]) pkgif.ConnectionUpgrade[C, ID, O] {
	if enabled && u != nil {
		return u
	}
	return Disabled[C, ID, O]{}
}
