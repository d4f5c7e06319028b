// Package types 定义 go-swarm 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 go-swarm 内部包。
//
// # 文件组织
//
//   - protocol.go - ProtocolID 协议标识符
//   - enums.go    - Direction 连接方向
//   - errors.go   - 错误分类（地址不支持 / 传输失败 / 协商失败 / 升级失败）
package types
