// Package interfaces 定义 go-swarm 公共接口
//
// 本文件定义 Transport 契约，抽象"能拨号 / 能监听"的底层传输。
package interfaces

import (
	"context"

	ma "github.com/multiformats/go-multiaddr"
)

// Transport 定义传输契约
//
// C 是传输产出的原始连接类型。
//
// 地址接受与否在 Dial/Listen 调用时同步判定；真正的 I/O 只在
// Future.Await 或 Listener.Accept 时发生。
//
// 不支持的地址返回 *types.AddrNotSupportedError（errors.Is 为
// types.ErrAddressNotSupported），传输自身保持不变，可继续用于其他地址，
// 组合子据此回退到下一个传输。
type Transport[C any] interface {
	// Listen 在指定地址监听
	Listen(addr ma.Multiaddr) (Listener[C], error)

	// Dial 准备拨号到指定地址，返回延迟结果
	Dial(addr ma.Multiaddr) (Future[C], error)
}

// Listener 定义连接序列
//
// Accept 返回下一个连接；单个连接的失败以条目错误的形式返回
// （见 types.IsItemError），监听器仍可继续 Accept。
type Listener[C any] interface {
	// Accept 接受下一个连接
	Accept(ctx context.Context) (C, error)

	// Multiaddr 返回实际监听地址
	Multiaddr() ma.Multiaddr

	// Close 关闭监听器
	Close() error
}

// Future 定义延迟的异步结果
//
// 从未 Await 的 Future 不执行任何 I/O。ctx 在完成前结束时，
// 实现必须释放已部分建立的连接。
type Future[T any] interface {
	// Await 等待结果
	Await(ctx context.Context) (T, error)
}

// FutureFunc 函数适配器
type FutureFunc[T any] func(ctx context.Context) (T, error)

// Await 实现 Future
func (f FutureFunc[T]) Await(ctx context.Context) (T, error) {
	return f(ctx)
}

// Ready 返回已完成的 Future
func Ready[T any](v T, err error) Future[T] {
	return FutureFunc[T](func(context.Context) (T, error) { return v, err })
}
