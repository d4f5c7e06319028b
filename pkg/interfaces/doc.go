// Package interfaces 定义 go-swarm 的公共接口
//
// 本包只包含契约，不包含实现：
//   - transport.go  - Transport / Listener / Future 传输契约
//   - upgrade.go    - ConnectionUpgrade 连接升级契约
//   - negotiate.go  - Negotiator 协议协商原语契约
//   - muxer.go      - MuxedConn 多路复用连接（对外 API 边界使用）
//
// 组合子（Or、When、Denied）与协商驱动 UpgradedNode 位于 internal/core 下，
// 它们都是泛型结构体，只在接口边界处发生动态分派。
package interfaces
