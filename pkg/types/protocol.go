// Package types 定义 go-swarm 的公共数据结构
//
// 本文件定义协议相关类型。
package types

import "strings"

// ProtocolID 协议标识符
//
// 升级在协商中通告的协议名，例如 "/plaintext/1.0.0"、"/noise"、"/yamux/1.0.0"。
// 按 multistream-select 约定以 "/" 开头，且不能包含换行符。
type ProtocolID string

// String 返回协议 ID 的字符串表示
func (p ProtocolID) String() string {
	return string(p)
}

// IsEmpty 检查协议 ID 是否为空
func (p ProtocolID) IsEmpty() bool {
	return p == ""
}

// Validate 检查协议名是否可用于协商
func (p ProtocolID) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyProtocolID
	}
	if !strings.HasPrefix(string(p), "/") || strings.ContainsAny(string(p), "\r\n") {
		return ErrInvalidProtocolID
	}
	return nil
}

// Version 返回协议版本（最后一段）
func (p ProtocolID) Version() string {
	parts := strings.Split(string(p), "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return ""
}

// Exact 按字节精确比较协议名，是协商默认的匹配谓词
func Exact(local, remote ProtocolID) bool {
	return local == remote
}
