// Package multiaddr 提供 go-swarm 使用的多地址辅助函数
//
// 地址本身使用 github.com/multiformats/go-multiaddr 表示，本包在其之上补充：
//   - /memory/<port> 协议注册（进程内传输使用）
//   - 各传输的地址形状判定（TCP、WebSocket、QUIC）
//   - 与 net.Addr / host:port 的转换
//
// # 地址格式
//
//	/memory/42
//	/ip4/127.0.0.1/tcp/4001
//	/ip6/::1/tcp/4001/ws
//	/ip4/192.168.1.1/udp/4001/quic-v1
//
// 传输只接受精确形状的地址，例如 /ip4/1.2.3.4/tcp/80/ws 不会被 TCP 传输接受，
// 这样 Or 组合子才能把它交给 WebSocket 传输。
package multiaddr
