// Package noise 实现基于 Noise 协议的加密升级
//
// 通告 /noise，协商选中后在原始连接上执行 Noise XX 握手，
// 之后的读写都经过 ChaCha20-Poly1305 加密。
//
// # 协议
//
// 使用 Noise_XX_25519_ChaChaPoly_SHA256 模式：
//   - XX: 三轮握手，双方交换静态公钥
//   - 25519: Curve25519 用于 DH 密钥交换
//   - ChaChaPoly: ChaCha20-Poly1305 用于对称加密
//   - SHA256: 用于 HKDF 密钥派生
//
// # 握手流程
//
//	-> e                    (发起者发送临时公钥)
//	<- e, ee, s, es         (响应者发送临时公钥、静态公钥)
//	-> s, se                (发起者发送静态公钥)
//
// 握手消息和加密数据都以 2 字节大端长度前缀分帧。
//
// 本层不校验对端身份：静态公钥可通过 Conn.RemoteStatic 取得，
// 由上层自行决定是否信任。
//
// # 使用示例
//
//	u, err := noise.New[net.Conn](noise.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	node := upgrader.WithUpgrade(tr, u)
package noise
