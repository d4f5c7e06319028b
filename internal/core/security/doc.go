// Package security 组装默认的加密升级
//
// 默认升级为 Noise ∨ PlainText：
//
//	upgrader.Or(When(EnableNoise, noise), When(EnablePlaintext, plaintext))
//
// Noise 排在前面，发起方优先提议 /noise。被禁用的一侧不通告协议，
// 组合的类型保持不变。输出连接为 either.Conn[*noise.Conn, transport.RawConn]。
package security
