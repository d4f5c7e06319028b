// Package memory 实现进程内传输
//
// 地址格式为 /memory/<port>。同一 Hub 内的监听器与拨号方通过 net.Pipe
// 连接，无网络 I/O，适用于测试和同进程组件之间的通信。
//
//	t := memory.New()
//	l, _ := t.Listen(ma.StringCast("/memory/0")) // 0 表示自动分配端口
//	fut, _ := t.Dial(l.Multiaddr())
//	conn, err := fut.Await(ctx)
//
// 拨号在监听方 Accept 时完成（无 backlog）；ctx 在交付前结束时两端
// 连接都会被关闭。
package memory
