// Package tcp 实现 TCP 传输
//
// TCP 连接是未加密、未复用的原始字节流，需要配合安全升级（Noise/PlainText）
// 和多路复用升级（yamux）使用。
//
// # 地址格式
//
//	/ip4/1.2.3.4/tcp/4001
//	/ip6/::1/tcp/4001
//
// 只接受上述精确形状；带 /ws 等后缀的地址返回"地址不支持"，由回退链中的
// 其他传输处理。
//
// # 使用示例
//
//	t := tcp.New(tcp.DefaultConfig())
//	l, err := t.Listen(ma.StringCast("/ip4/0.0.0.0/tcp/4001"))
//	fut, err := t.Dial(ma.StringCast("/ip4/1.2.3.4/tcp/4001"))
//	conn, err := fut.Await(ctx)
package tcp
