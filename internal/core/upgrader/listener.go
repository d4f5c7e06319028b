package upgrader

import (
	"context"
	"io"
	"sync"

	ma "github.com/multiformats/go-multiaddr"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ============================================================================
//                              upgradeListener
// ============================================================================

// result 单个入站连接的升级结果
type result[O any] struct {
	conn O
	err  error
}

// upgradeListener 对每个入站连接独立协商、升级
//
// 后台 acceptLoop 从底层监听器取原始连接，每个连接在自己的 goroutine 中
// 升级；并发数受信号量限制，可选按速率限流。
type upgradeListener[C io.ReadWriteCloser, ID, O any] struct {
	node  *UpgradedNode[C, ID, O]
	inner pkgif.Listener[C]

	ctx    context.Context
	cancel context.CancelFunc

	sem     *semaphore.Weighted
	limiter *rate.Limiter

	results chan result[O]
	wg      sync.WaitGroup

	loopDone chan struct{}
	drained  chan struct{}

	mu      sync.Mutex
	loopErr error

	closeOnce sync.Once
	closeErr  error
}

func newListener[C io.ReadWriteCloser, ID, O any](n *UpgradedNode[C, ID, O], inner pkgif.Listener[C]) *upgradeListener[C, ID, O] {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := n.opts.cfg

	l := &upgradeListener[C, ID, O]{
		node:     n,
		inner:    inner,
		ctx:      ctx,
		cancel:   cancel,
		sem:      semaphore.NewWeighted(int64(cfg.MaxInboundUpgrades)),
		results:  make(chan result[O], cfg.AcceptBacklog),
		loopDone: make(chan struct{}),
		drained:  make(chan struct{}),
	}
	if cfg.AcceptRate > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(cfg.AcceptRate), max(cfg.AcceptBurst, 1))
	}

	go l.acceptLoop()
	go func() {
		<-l.loopDone
		l.wg.Wait()
		close(l.drained)
	}()

	logger.Info("监听器已启动", "addr", inner.Multiaddr())
	return l
}

func (l *upgradeListener[C, ID, O]) acceptLoop() {
	defer close(l.loopDone)

	for {
		if l.limiter != nil {
			if err := l.limiter.Wait(l.ctx); err != nil {
				return
			}
		}
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			return
		}

		raw, err := l.inner.Accept(l.ctx)
		if err != nil {
			l.sem.Release(1)
			if l.ctx.Err() != nil {
				return
			}
			if types.IsItemError(err) {
				l.deliver(result[O]{err: err})
				continue
			}
			logger.Warn("底层监听器失败", "addr", l.inner.Multiaddr(), "error", err)
			l.mu.Lock()
			l.loopErr = err
			l.mu.Unlock()
			return
		}

		l.wg.Add(1)
		go l.handle(raw)
	}
}

// handle 升级单个入站连接
func (l *upgradeListener[C, ID, O]) handle(raw C) {
	defer l.wg.Done()
	defer l.sem.Release(1)

	ctx := l.ctx
	if timeout := l.node.opts.cfg.AcceptTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := l.node.upgradeConn(ctx, raw, l.inner.Multiaddr(), types.DirInbound)
	if !l.deliver(result[O]{conn: out, err: err}) && err == nil {
		closeValue(out)
	}
}

// deliver 把结果交给 Accept，监听器关闭时返回 false
func (l *upgradeListener[C, ID, O]) deliver(r result[O]) bool {
	select {
	case l.results <- r:
		return true
	case <-l.ctx.Done():
		return false
	}
}

// Accept 返回下一个升级完成的连接
//
// 单个连接的协商或升级失败返回条目错误（types.IsItemError），
// 之后仍可继续 Accept。
func (l *upgradeListener[C, ID, O]) Accept(ctx context.Context) (O, error) {
	var zero O

	select {
	case r := <-l.results:
		return r.conn, r.err
	case <-l.ctx.Done():
		return zero, types.ErrListenerClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-l.drained:
		// 底层监听器已结束，先取完剩余结果
		select {
		case r := <-l.results:
			return r.conn, r.err
		default:
		}
		l.mu.Lock()
		err := l.loopErr
		l.mu.Unlock()
		if err == nil {
			err = types.ErrListenerClosed
		}
		return zero, err
	}
}

// Multiaddr 返回实际监听地址
func (l *upgradeListener[C, ID, O]) Multiaddr() ma.Multiaddr {
	return l.inner.Multiaddr()
}

// Close 关闭监听器
//
// 停止接受新连接，中断进行中的升级，并关闭已升级但未被 Accept 的连接。
func (l *upgradeListener[C, ID, O]) Close() error {
	l.closeOnce.Do(func() {
		l.cancel()
		l.closeErr = l.inner.Close()
		<-l.drained

		for empty := false; !empty; {
			select {
			case r := <-l.results:
				if r.err == nil {
					closeValue(r.conn)
				}
			default:
				empty = true
			}
		}
		logger.Info("监听器已关闭", "addr", l.inner.Multiaddr())
	})
	return l.closeErr
}
