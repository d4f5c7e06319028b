package transport

import (
	"io"

	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/either"
	"github.com/dep2p/go-swarm/pkg/types"
)

// ============================================================================
//                              OrTransport
// ============================================================================

// OrTransport 回退组合的两个传输
//
// 自身不可变，可被并发使用；一次失败的调用不会改变它，
// 同一地址再次调用得到相同结果。
type OrTransport[A, B io.ReadWriteCloser] struct {
	first  pkgif.Transport[A]
	second pkgif.Transport[B]
}

// 确保实现接口
var _ pkgif.Transport[either.Conn[io.ReadWriteCloser, io.ReadWriteCloser]] = (*OrTransport[io.ReadWriteCloser, io.ReadWriteCloser])(nil)

// Or 组合两个传输，先 first 后 second
func Or[A, B io.ReadWriteCloser](first pkgif.Transport[A], second pkgif.Transport[B]) *OrTransport[A, B] {
	return &OrTransport[A, B]{first: first, second: second}
}

// First 返回第一个传输
func (t *OrTransport[A, B]) First() pkgif.Transport[A] {
	return t.first
}

// Second 返回第二个传输
func (t *OrTransport[A, B]) Second() pkgif.Transport[B] {
	return t.second
}

// Dial 准备拨号
func (t *OrTransport[A, B]) Dial(addr ma.Multiaddr) (pkgif.Future[either.Conn[A, B]], error) {
	fa, err := t.first.Dial(addr)
	if err == nil {
		logger.Debug("地址由第一个传输处理", "op", "dial", "addr", addr)
		return either.FirstFuture[A, B](fa), nil
	}
	if !types.IsAddressNotSupported(err) {
		return nil, err
	}

	fb, err := t.second.Dial(addr)
	if err == nil {
		logger.Debug("地址回退到第二个传输", "op", "dial", "addr", addr)
		return either.SecondFuture[A, B](fb), nil
	}
	if !types.IsAddressNotSupported(err) {
		return nil, err
	}

	return nil, types.NewAddrNotSupportedError(addr)
}

// Listen 监听
func (t *OrTransport[A, B]) Listen(addr ma.Multiaddr) (pkgif.Listener[either.Conn[A, B]], error) {
	la, err := t.first.Listen(addr)
	if err == nil {
		logger.Debug("地址由第一个传输处理", "op", "listen", "addr", addr)
		return either.FirstListener[A, B](la), nil
	}
	if !types.IsAddressNotSupported(err) {
		return nil, err
	}

	lb, err := t.second.Listen(addr)
	if err == nil {
		logger.Debug("地址回退到第二个传输", "op", "listen", "addr", addr)
		return either.SecondListener[A, B](lb), nil
	}
	if !types.IsAddressNotSupported(err) {
		return nil, err
	}

	return nil, types.NewAddrNotSupportedError(addr)
}
