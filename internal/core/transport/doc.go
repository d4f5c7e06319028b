// Package transport 实现传输组合子
//
// 具体传输位于子包（memory、tcp、websocket、quic），本包提供把它们
// 组合成一个传输的工具：
//
//   - Or(A, B)   - 回退组合：先尝试 A，仅当 A 返回"地址不支持"时尝试 B
//   - Denied[C]  - 拒绝所有地址，用作链尾或禁用状态
//   - When(on,T) - 按开关返回 T 或 Denied，保持类型不变
//   - Map/Erase  - 在最外层 API 边界转换或擦除连接类型
//
// # 回退语义
//
// Or 的结果按来源打标签：A 的连接为 either.First，B 的连接为 either.Second。
// 嵌套时形成右倾链，N 个传输严格从左到右尝试：
//
//	t := transport.Or(quicT, transport.Or(tcpT, memT))
//	fut, err := t.Dial(addr)
//	if errors.Is(err, types.ErrAddressNotSupported) {
//	    // t 未改变，可以继续用于其他地址
//	}
//	conn, err := fut.Await(ctx)
//
// 除"地址不支持"之外的同步错误直接返回，不会尝试 B。
//
// # Fx 模块集成
//
//	app := fx.New(
//	    config.Module(),
//	    transport.Module(),
//	    fx.Invoke(func(s *transport.Stack) { ... }),
//	)
//
// 公共接口：pkg/interfaces/transport.go
package transport
