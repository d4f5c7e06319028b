// Package types 定义 go-swarm 的公共数据结构
//
// 本文件定义所有公共错误类型。
package types

import (
	"errors"
	"fmt"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              协议 ID 相关错误
// ============================================================================

var (
	// ErrEmptyProtocolID 空协议 ID
	ErrEmptyProtocolID = errors.New("empty protocol ID")

	// ErrInvalidProtocolID 无效的协议 ID（必须以 "/" 开头且不含换行）
	ErrInvalidProtocolID = errors.New("invalid protocol ID")
)

// ============================================================================
//                              地址不支持
// ============================================================================

// ErrAddressNotSupported 传输（或传输链）无法处理该地址
//
// 这是预期的控制流而非故障：调用方应换用其他传输重试。
var ErrAddressNotSupported = errors.New("address not supported")

// AddrNotSupportedError 携带未被消费的原始地址
//
// 返回此错误时传输本身保持不变，调用方可以继续使用它，
// 也可以把 Addr 交给其他传输。
type AddrNotSupportedError struct {
	Addr ma.Multiaddr
}

// NewAddrNotSupportedError 创建地址不支持错误
func NewAddrNotSupportedError(addr ma.Multiaddr) *AddrNotSupportedError {
	return &AddrNotSupportedError{Addr: addr}
}

func (e *AddrNotSupportedError) Error() string {
	if e.Addr == nil {
		return ErrAddressNotSupported.Error()
	}
	return fmt.Sprintf("%s: %s", ErrAddressNotSupported, e.Addr)
}

// Is 使 errors.Is(err, ErrAddressNotSupported) 成立
func (e *AddrNotSupportedError) Is(target error) bool {
	return target == ErrAddressNotSupported
}

// IsAddressNotSupported 判断错误是否为地址不支持
func IsAddressNotSupported(err error) bool {
	return errors.Is(err, ErrAddressNotSupported)
}

// UnsupportedAddr 提取地址不支持错误中携带的地址
func UnsupportedAddr(err error) (ma.Multiaddr, bool) {
	var e *AddrNotSupportedError
	if errors.As(err, &e) {
		return e.Addr, true
	}
	return nil, false
}

// ============================================================================
//                              传输 I/O 失败
// ============================================================================

// TransportError 底层 connect/accept I/O 失败
//
// 例如连接被拒绝、重置或超时。本层不会自动重试。
type TransportError struct {
	Op   string // "dial" / "listen" / "accept"
	Addr ma.Multiaddr
	Err  error
}

// NewTransportError 创建传输错误
func NewTransportError(op string, addr ma.Multiaddr, err error) *TransportError {
	return &TransportError{Op: op, Addr: addr, Err: err}
}

func (e *TransportError) Error() string {
	if e.Addr == nil {
		return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ============================================================================
//                              协商 / 升级失败
// ============================================================================

var (
	// ErrNegotiationFailed 协议协商失败（无共同协议或协商 I/O 失败）
	ErrNegotiationFailed = errors.New("protocol negotiation failed")

	// ErrUpgradeFailed 选中升级自身的握手失败
	ErrUpgradeFailed = errors.New("connection upgrade failed")

	// ErrNoProtocols 升级没有通告任何协议
	ErrNoProtocols = errors.New("no protocols to negotiate")

	// ErrListenerClosed 监听器已关闭
	ErrListenerClosed = errors.New("listener closed")
)

// NegotiationError 协商失败
//
// 对当前拨号或当前入站连接是致命的，连接已被关闭，不可复用。
type NegotiationError struct {
	Direction Direction
	Protocols []ProtocolID
	Err       error
}

func (e *NegotiationError) Error() string {
	names := make([]string, len(e.Protocols))
	for i, p := range e.Protocols {
		names[i] = string(p)
	}
	return fmt.Sprintf("%s (%s, offered [%s]): %v",
		ErrNegotiationFailed, e.Direction, strings.Join(names, " "), e.Err)
}

func (e *NegotiationError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrNegotiationFailed) 成立
func (e *NegotiationError) Is(target error) bool {
	return target == ErrNegotiationFailed
}

// UpgradeError 升级握手失败
type UpgradeError struct {
	Protocol  ProtocolID
	Direction Direction
	Err       error
}

func (e *UpgradeError) Error() string {
	return fmt.Sprintf("%s (%s %s): %v", ErrUpgradeFailed, e.Protocol, e.Direction, e.Err)
}

func (e *UpgradeError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrUpgradeFailed) 成立
func (e *UpgradeError) Is(target error) bool {
	return target == ErrUpgradeFailed
}

// IsClassified 判断错误是否已被某一层归类
//
// 嵌套的 UpgradedNode 不会对内层已归类的错误再次包装。
func IsClassified(err error) bool {
	var (
		ne *NegotiationError
		ue *UpgradeError
		te *TransportError
	)
	return errors.As(err, &ne) || errors.As(err, &ue) || errors.As(err, &te) ||
		errors.Is(err, ErrAddressNotSupported)
}

// IsItemError 判断错误是否仅影响监听器中的单个连接
//
// 协商和升级失败只终止对应的入站连接，监听器继续产出后续连接。
func IsItemError(err error) bool {
	return errors.Is(err, ErrNegotiationFailed) || errors.Is(err, ErrUpgradeFailed)
}
