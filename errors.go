package swarm

import "errors"

// 公共错误定义
var (
	// ErrSwarmClosed Swarm 已关闭
	ErrSwarmClosed = errors.New("swarm closed")

	// ErrNoTransport 未启用任何传输
	ErrNoTransport = errors.New("at least one transport must be enabled")

	// ErrNoSecurity 未启用任何安全升级
	ErrNoSecurity = errors.New("at least one security upgrade must be enabled")
)
