package upgrader

import (
	"context"
	"io"

	"github.com/google/uuid"
	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/either"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/upgrader")

// ============================================================================
//                              UpgradedNode
// ============================================================================

// UpgradedNode 绑定一个传输和一个升级
//
// 拨号和监听都按 传输 → 协商 → 升级 的顺序进行，三个阶段严格串行。
// UpgradedNode 自身实现 Transport[O]，可以继续参与 Or 组合或叠加升级。
//
// 节点本身不可变，可被并发使用。
type UpgradedNode[C io.ReadWriteCloser, ID, O any] struct {
	transport pkgif.Transport[C]
	upgrade   pkgif.ConnectionUpgrade[C, ID, O]
	opts      options
}

// 确保实现接口
var _ pkgif.Transport[io.ReadWriteCloser] = (*UpgradedNode[io.ReadWriteCloser, string, io.ReadWriteCloser])(nil)

// WithUpgrade 在传输上叠加升级
func WithUpgrade[C io.ReadWriteCloser, ID, O any](
	t pkgif.Transport[C],
	u pkgif.ConnectionUpgrade[C, ID, O],
	opts ...Option,
) *UpgradedNode[C, ID, O] {
	return &UpgradedNode[C, ID, O]{
		transport: t,
		upgrade:   u,
		opts:      buildOptions(opts),
	}
}

// OrUpgrade 返回同一传输、升级为 Or(n.Upgrade(), other) 的新节点
//
// 原节点不受影响。
func OrUpgrade[C io.ReadWriteCloser, IA, IB any, OA, OB io.ReadWriteCloser](
	n *UpgradedNode[C, IA, OA],
	other pkgif.ConnectionUpgrade[C, IB, OB],
) *UpgradedNode[C, either.Value[IA, IB], either.Conn[OA, OB]] {
	return &UpgradedNode[C, either.Value[IA, IB], either.Conn[OA, OB]]{
		transport: n.transport,
		upgrade:   Or[C, IA, IB, OA, OB](n.upgrade, other),
		opts:      n.opts,
	}
}

// Transport 返回底层传输
func (n *UpgradedNode[C, ID, O]) Transport() pkgif.Transport[C] {
	return n.transport
}

// Upgrade 返回升级
func (n *UpgradedNode[C, ID, O]) Upgrade() pkgif.ConnectionUpgrade[C, ID, O] {
	return n.upgrade
}

// Config 返回驱动配置
func (n *UpgradedNode[C, ID, O]) Config() Config {
	return n.opts.cfg
}

// Dial 准备拨号
//
// 地址不被传输支持时原样返回传输的错误，节点保持不变。
// 返回的 Future 在 Await 时才建立连接并协商。
func (n *UpgradedNode[C, ID, O]) Dial(addr ma.Multiaddr) (pkgif.Future[O], error) {
	fut, err := n.transport.Dial(addr)
	if err != nil {
		return nil, err
	}

	return pkgif.FutureFunc[O](func(ctx context.Context) (O, error) {
		raw, err := fut.Await(ctx)
		if err != nil {
			var zero O
			return zero, err
		}

		if n.opts.cfg.NegotiateTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, n.opts.cfg.NegotiateTimeout)
			defer cancel()
		}
		return n.upgradeConn(ctx, raw, addr, types.DirOutbound)
	}), nil
}

// Listen 监听
//
// 每个入站连接独立协商和升级，单个连接的失败以条目错误返回，
// 不影响监听器产出后续连接。
func (n *UpgradedNode[C, ID, O]) Listen(addr ma.Multiaddr) (pkgif.Listener[O], error) {
	l, err := n.transport.Listen(addr)
	if err != nil {
		return nil, err
	}
	return newListener(n, l), nil
}

// upgradeConn 在原始连接上协商并升级
//
// 失败或 ctx 结束时原始连接一定会被关闭。
func (n *UpgradedNode[C, ID, O]) upgradeConn(ctx context.Context, raw C, addr ma.Multiaddr, dir types.Direction) (O, error) {
	var zero O
	connID := log.TruncateID(uuid.NewString(), 8)

	protos := n.upgrade.Protocols()
	names := make([]types.ProtocolID, len(protos))
	candidates := make([]pkgif.Candidate, len(protos))
	for i, p := range protos {
		names[i] = p.Name
		candidates[i] = pkgif.Candidate{Name: p.Name, Match: types.Exact}
	}

	if len(protos) == 0 {
		_ = raw.Close()
		return zero, &types.NegotiationError{Direction: dir, Err: types.ErrNoProtocols}
	}

	// ctx 结束时关闭原始连接，中断阻塞中的协商或握手
	stop := context.AfterFunc(ctx, func() {
		_ = raw.Close()
	})

	logger.Debug("开始协商", "conn", connID, "addr", addr, "direction", dir, "protocols", names)

	var (
		idx int
		err error
	)
	if dir.IsInitiator() {
		idx, err = n.opts.negotiator.SelectAsDialer(ctx, raw, candidates)
	} else {
		idx, err = n.opts.negotiator.SelectAsListener(ctx, raw, candidates)
	}
	if err == nil && (idx < 0 || idx >= len(protos)) {
		err = ErrNoCommonProtocol
	}
	if err != nil {
		stop()
		_ = raw.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		logger.Warn("协商失败", "conn", connID, "addr", addr, "direction", dir, "error", err)
		return zero, &types.NegotiationError{Direction: dir, Protocols: names, Err: err}
	}

	chosen := protos[idx]
	logger.Debug("协商完成", "conn", connID, "protocol", chosen.Name)

	out, err := n.upgrade.Upgrade(ctx, raw, chosen.ID, dir)
	if !stop() && err == nil {
		// ctx 在升级期间结束，原始连接已被关闭
		closeValue(out)
		err = ctx.Err()
	}
	if err != nil {
		_ = raw.Close()
		logger.Warn("升级失败", "conn", connID, "protocol", chosen.Name, "direction", dir, "error", err)
		if types.IsClassified(err) {
			return zero, err
		}
		return zero, &types.UpgradeError{Protocol: chosen.Name, Direction: dir, Err: err}
	}

	logger.Debug("升级完成", "conn", connID, "protocol", chosen.Name, "direction", dir)
	return out, nil
}

// closeValue 关闭实现了 io.Closer 的升级结果
func closeValue[O any](v O) {
	if c, ok := any(v).(io.Closer); ok {
		_ = c.Close()
	}
}
