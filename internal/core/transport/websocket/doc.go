// Package websocket 实现 WebSocket 传输
//
// 地址格式为 /ip{4,6}/<ip>/tcp/<port>/ws。每个 WebSocket 连接承载一条
// 字节流：写入的数据作为二进制消息发送，读取时按顺序拼接收到的二进制消息。
//
//	t := websocket.New(websocket.DefaultConfig())
//	l, err := t.Listen(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
package websocket
