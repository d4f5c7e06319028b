// Package upgrader 实现连接升级的组合与协商驱动
//
// # 概述
//
// UpgradedNode 把一个传输和一个升级绑定为新的传输：
//
//	传输拨号/接受 → 协议协商（multistream-select）→ 执行选中的升级
//
// 三个阶段在同一个连接上严格串行。UpgradedNode 自身实现
// Transport[O]，因此可以再叠加升级（先加密再多路复用），
// 也可以作为 transport.Or 的一侧。
//
// # 组合
//
//	security := upgrader.Or[net.Conn](noise.New(cfg), plaintext.New())
//	secured  := upgrader.WithUpgrade(tr, security)
//	muxed    := upgrader.WithUpgrade(secured, yamux.New(ycfg))
//
// Or(A, B) 的协议列表为 A 的协议（标记 First）后接 B 的协议（标记 Second）。
// 协商选中的标识携带标记，Upgrade 据此只调用对应一侧。
//
// OrUpgrade(node, other) 在不改变传输的前提下扩展节点的升级集合。
//
// # 错误
//
//   - 地址不支持：Dial/Listen 同步返回传输的错误，节点不变
//   - 协商失败：*types.NegotiationError，连接已关闭
//   - 升级失败：*types.UpgradeError，连接已关闭
//
// 内层节点已归类的错误不会被外层再次包装。
//
// # 监听器
//
// 每个入站连接在独立的 goroutine 中升级，并发数由
// Config.MaxInboundUpgrades 限制，可选 AcceptRate 限流。
// 单个连接的失败作为条目错误从 Accept 返回，监听器继续工作。
//
// # 取消
//
// 传给 Await 的 ctx 结束时，已部分建立的原始连接会被关闭；
// 从未 Await 的 Future 不做任何 I/O。
package upgrader
