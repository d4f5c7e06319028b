package yamux

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/hashicorp/yamux"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
)

// ErrMuxerClosed 多路复用器已关闭
var ErrMuxerClosed = errors.New("yamux: muxer closed")

// Muxer 封装 yamux.Session，实现 MuxedConn
type Muxer struct {
	session  *yamux.Session
	isServer bool
	closed   atomic.Bool
}

// 确保实现接口
var _ pkgif.MuxedConn = (*Muxer)(nil)

// NewMuxer 从 yamux.Session 创建 Muxer 封装
func NewMuxer(session *yamux.Session, isServer bool) *Muxer {
	return &Muxer{
		session:  session,
		isServer: isServer,
	}
}

// OpenStream 打开新流
func (m *Muxer) OpenStream(ctx context.Context) (net.Conn, error) {
	if m.IsClosed() {
		return nil, ErrMuxerClosed
	}

	// yamux 的 OpenStream 不支持 context，在单独的 goroutine 中处理
	type result struct {
		stream *yamux.Stream
		err    error
	}
	resultCh := make(chan result, 1)
	done := make(chan struct{})

	go func() {
		s, err := m.session.OpenStream()
		select {
		case resultCh <- result{stream: s, err: err}:
		case <-done:
			// 调用方已放弃，关闭孤立的流
			if s != nil {
				_ = s.Close()
			}
		}
	}()

	select {
	case <-ctx.Done():
		close(done)
		return nil, ctx.Err()
	case r := <-resultCh:
		if r.err != nil {
			return nil, fmt.Errorf("open stream: %w", r.err)
		}
		return r.stream, nil
	}
}

// AcceptStream 接受新流
func (m *Muxer) AcceptStream(ctx context.Context) (net.Conn, error) {
	if m.IsClosed() {
		return nil, ErrMuxerClosed
	}

	s, err := m.session.AcceptStreamWithContext(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("accept stream: %w", err)
	}
	return s, nil
}

// Close 关闭会话和其中所有流
func (m *Muxer) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	return m.session.Close()
}

// IsClosed 检查是否已关闭
func (m *Muxer) IsClosed() bool {
	return m.closed.Load() || m.session.IsClosed()
}

// NumStreams 返回当前流数量
func (m *Muxer) NumStreams() int {
	return m.session.NumStreams()
}

// IsServer 返回是否是服务端
func (m *Muxer) IsServer() bool {
	return m.isServer
}

// Session 返回底层 yamux.Session
func (m *Muxer) Session() *yamux.Session {
	return m.session
}

// Ping 测量往返时间
func (m *Muxer) Ping() (time.Duration, error) {
	if m.IsClosed() {
		return 0, ErrMuxerClosed
	}
	return m.session.Ping()
}
