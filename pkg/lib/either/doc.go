// Package either 提供两路和类型适配器
//
// 组合子把两个同能力的具体实现合成一个值，而不擦除具体类型：
//
//   - Value[A, B]    - 任意值（用于协议标识）
//   - Conn[A, B]     - 字节流连接
//   - Future[A, B]   - 延迟拨号结果
//   - Listener[A, B] - 连接序列
//
// 构造时打上 First 或 Second 标签，之后的每个操作都按标签转发给
// 持有的值，产生的结果再包装回同一标签。构造后不存在变体间的转换；
// 多于两个备选时嵌套同一类型，而不是增加变体。
//
//	c := either.FirstConn[net.Conn, *noise.Conn](raw)
//	c.Side() // either.First
package either
