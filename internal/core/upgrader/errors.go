package upgrader

import "errors"

var (
	// ErrNoCommonProtocol 双方没有共同支持的协议
	ErrNoCommonProtocol = errors.New("upgrader: no common protocol")

	// ErrDisabled 升级已被配置禁用
	ErrDisabled = errors.New("upgrader: upgrade disabled")
)
