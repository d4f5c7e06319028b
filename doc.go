// Package swarm 提供可组合的传输与协议协商引擎
//
// go-swarm 把"建立字节流"和"在字节流上协商并升级协议"拆成两个正交的组合维度：
//
//   - 传输（Transport）：按地址判定是否支持，多个传输用 Or 组成回退链
//   - 升级（ConnectionUpgrade）：在原始连接上协商协议名后执行升级，多个升级用 Or 组成选择
//
// 两者由 upgrader.UpgradedNode 驱动，UpgradedNode 自身又是传输，可以继续叠加升级。
//
// # 快速开始
//
//	import swarm "github.com/dep2p/go-swarm"
//
//	// 默认栈：QUIC ∨ TCP ∨ Memory，Noise 加密，yamux 多路复用
//	s, err := swarm.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	l, _ := s.Listen("/ip4/0.0.0.0/tcp/4001")
//	conn, _ := s.Dial(ctx, "/ip4/127.0.0.1/tcp/4001")
//	stream, _ := conn.OpenStream(ctx)
//
// # 默认栈
//
// Swarm 组装的默认栈为：
//
//	WithUpgrade(
//	    WithUpgrade(QUIC ∨ TCP ∨ WebSocket ∨ Memory, Noise ∨ PlainText),
//	    yamux,
//	)
//
// 未启用的传输或升级以 Denied / Disabled 占位，链的类型不随配置变化。
// 需要自定义栈时直接使用 internal/core 下的组合子。
//
// # 配置
//
// 通过 Option 配置：
//
//	s, err := swarm.New(ctx,
//	    swarm.WithMemoryOnly(),
//	    swarm.WithPlaintext(true),
//	    swarm.WithNegotiateTimeout(10*time.Second),
//	)
//
// 也可以加载 JSON 配置文件，见 WithConfigFile。
package swarm
