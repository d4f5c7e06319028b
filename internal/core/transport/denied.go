package transport

import (
	ma "github.com/multiformats/go-multiaddr"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/types"
)

// Denied 拒绝所有地址的传输
//
// 用作回退链的终止者，或表示被配置禁用的传输。
type Denied[C any] struct{}

// Dial 总是返回地址不支持
func (Denied[C]) Dial(addr ma.Multiaddr) (pkgif.Future[C], error) {
	return nil, types.NewAddrNotSupportedError(addr)
}

// Listen 总是返回地址不支持
func (Denied[C]) Listen(addr ma.Multiaddr) (pkgif.Listener[C], error) {
	return nil, types.NewAddrNotSupportedError(addr)
}

// When 按开关返回 t 或 Denied
//
// 组合链的类型不随配置变化，禁用的位置只是拒绝所有地址。
func When[C any](enabled bool, t pkgif.Transport[C]) pkgif.Transport[C] {
	if enabled && t != nil {
		return t
	}
	return Denied[C]{}
}
