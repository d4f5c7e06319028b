// Package lib 包含基础设施工具库
//
// 本目录包含与架构组件无关的通用工具库：
//
//   - either: 二选一值、连接、Future 与监听器适配
//   - multiaddr: 多地址判定与转换
//   - netconn: 对任意字节流的 net.Conn 能力探测
//   - log: 日志封装
//
// # 与 pkg/ 其他目录的关系
//
// pkg/ 目录包含三类内容：
//
//   - interfaces/: 组件公共接口（架构核心）
//   - types/: 公共类型定义（架构核心）
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-swarm/pkg/lib/either"
//	    "github.com/dep2p/go-swarm/pkg/lib/log"
//	    "github.com/dep2p/go-swarm/pkg/lib/multiaddr"
//	)
package lib
