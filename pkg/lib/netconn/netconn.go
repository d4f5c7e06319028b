// Package netconn 提供对可选 net.Conn 能力的探测与转发
//
// 原始连接只要求 io.ReadWriteCloser；地址与截止时间是可选能力，
// 包装类型（either.Conn、noise.Conn 等）通过本包转发，不支持时返回
// errors.ErrUnsupported。
package netconn

import (
	"errors"
	"io"
	"net"
	"time"
)

// Deadliner 支持截止时间的连接
type Deadliner interface {
	SetDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Addresser 能报告地址的连接
type Addresser interface {
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// LocalAddr 返回本地地址，不支持时返回 nil
func LocalAddr(c io.ReadWriteCloser) net.Addr {
	if a, ok := c.(Addresser); ok {
		return a.LocalAddr()
	}
	return nil
}

// RemoteAddr 返回远端地址，不支持时返回 nil
func RemoteAddr(c io.ReadWriteCloser) net.Addr {
	if a, ok := c.(Addresser); ok {
		return a.RemoteAddr()
	}
	return nil
}

// SetDeadline 设置读写截止时间
func SetDeadline(c io.ReadWriteCloser, t time.Time) error {
	if d, ok := c.(Deadliner); ok {
		return d.SetDeadline(t)
	}
	return errors.ErrUnsupported
}

// SetReadDeadline 设置读截止时间
func SetReadDeadline(c io.ReadWriteCloser, t time.Time) error {
	if d, ok := c.(Deadliner); ok {
		return d.SetReadDeadline(t)
	}
	return errors.ErrUnsupported
}

// SetWriteDeadline 设置写截止时间
func SetWriteDeadline(c io.ReadWriteCloser, t time.Time) error {
	if d, ok := c.(Deadliner); ok {
		return d.SetWriteDeadline(t)
	}
	return errors.ErrUnsupported
}

// ClearDeadline 清除截止时间，忽略不支持的情况
func ClearDeadline(c io.ReadWriteCloser) {
	_ = SetDeadline(c, time.Time{})
}
