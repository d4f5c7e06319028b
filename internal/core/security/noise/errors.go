package noise

import "errors"

var (
	// ErrInvalidHandshake 握手失败
	ErrInvalidHandshake = errors.New("noise: invalid handshake")

	// ErrInvalidStaticKey 静态私钥长度不正确
	ErrInvalidStaticKey = errors.New("noise: static key must be 32 bytes")
)
