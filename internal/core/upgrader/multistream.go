package upgrader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	mss "github.com/multiformats/go-multistream"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/netconn"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ============================================================================
//                              Multistream
// ============================================================================

// Multistream 基于 multistream-select 1.0 的协商原语
//
// 发起方按候选顺序逐个提议（SelectOneOf），接收方按候选顺序匹配
// 对端提议的名字（MultistreamMuxer.Negotiate）。
type Multistream struct{}

// 确保实现接口
var _ pkgif.Negotiator = Multistream{}

// SelectAsDialer 以发起方角色协商
func (Multistream) SelectAsDialer(ctx context.Context, rwc io.ReadWriteCloser, candidates []pkgif.Candidate) (int, error) {
	if len(candidates) == 0 {
		return -1, types.ErrNoProtocols
	}

	names := make([]types.ProtocolID, 0, len(candidates))
	seen := make(map[types.ProtocolID]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}

	defer withDeadline(ctx, rwc)()

	selected, err := mss.SelectOneOf(names, rwc)
	if err != nil {
		return -1, negotiateErr(ctx, err)
	}

	for i, c := range candidates {
		if c.Name == selected {
			return i, nil
		}
	}
	return -1, fmt.Errorf("peer selected unknown protocol %s", selected)
}

// SelectAsListener 以接收方角色协商
func (Multistream) SelectAsListener(ctx context.Context, rwc io.ReadWriteCloser, candidates []pkgif.Candidate) (int, error) {
	if len(candidates) == 0 {
		return -1, types.ErrNoProtocols
	}

	// 同名候选只注册第一个，AddHandlerWithFunc 会替换同名 handler
	muxer := mss.NewMultistreamMuxer[types.ProtocolID]()
	seen := make(map[types.ProtocolID]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		muxer.AddHandlerWithFunc(c.Name, c.Matches, nil)
	}

	defer withDeadline(ctx, rwc)()

	remote, _, err := muxer.Negotiate(rwc)
	if err != nil {
		return -1, negotiateErr(ctx, err)
	}

	for i, c := range candidates {
		if c.Matches(remote) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no candidate matches %s", remote)
}

// withDeadline 把 ctx 的截止时间设置到连接上
//
// 返回的函数清除截止时间。连接不支持截止时间时什么也不做，
// 取消由调用方关闭连接来保证。
func withDeadline(ctx context.Context, rwc io.ReadWriteCloser) func() {
	d, ok := ctx.Deadline()
	if !ok {
		return func() {}
	}
	if err := netconn.SetDeadline(rwc, d); err != nil {
		return func() {}
	}
	return func() { _ = netconn.SetDeadline(rwc, time.Time{}) }
}

// negotiateErr 优先报告 ctx 的结束原因
func negotiateErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// 连接的截止时间来自 ctx，可能先于 ctx 自身的计时器触发
	if errors.Is(err, os.ErrDeadlineExceeded) {
		if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
			return context.DeadlineExceeded
		}
	}
	var notSupported mss.ErrNotSupported[types.ProtocolID]
	if errors.As(err, &notSupported) {
		return fmt.Errorf("%w: %v", ErrNoCommonProtocol, err)
	}
	return err
}
