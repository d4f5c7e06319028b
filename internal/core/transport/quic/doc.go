// Package quic 实现 QUIC 传输
//
// 地址格式为 /ip{4,6}/<ip>/udp/<port>/quic-v1。每个 QUIC 连接只使用一条
// 双向流作为原始字节流，安全与多路复用仍由上层升级协商完成，
// 因此 QUIC 可以与 TCP、WebSocket 放在同一条回退链中。
//
// TLS 使用启动时生成的自签名 Ed25519 证书，不做身份校验。
//
// 监听器拥有自己的 UDP socket，关闭监听器会终止其上的所有连接；
// 拨号共用一个惰性创建的 socket，由 Transport.Close 释放。
package quic
