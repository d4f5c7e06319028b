// Package plaintext 实现不加密的恒等升级
//
// 通告 /plaintext/1.0.0，协商选中后原样返回原始连接，
// 不读写任何字节。仅用于测试或可信网络。
package plaintext
