// Package muxer 提供默认的流多路复用升级
//
// 在加密升级（security.Conn）之上协商 /yamux/1.0.0，输出 *yamux.Muxer，
// 实现 MuxedConn：
//
//	m, _ := fut.Await(ctx)
//	stream, _ := m.OpenStream(ctx)
//	defer stream.Close()
//
// yamux 参数来自统一配置的 Muxer.Yamux 段，见 ConfigFromUnified。
package muxer
