package noise

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/flynn/noise"

	"github.com/dep2p/go-swarm/pkg/lib/netconn"
)

// maxPlaintext 单帧可承载的最大明文（扣除 Poly1305 认证标签）
const maxPlaintext = maxFrameSize - 16

// Conn Noise 加密连接
//
// 读写分别加锁，可以一个 goroutine 读、另一个 goroutine 写。
type Conn struct {
	raw io.ReadWriteCloser

	sendCS *noise.CipherState
	recvCS *noise.CipherState

	localStatic  []byte
	remoteStatic []byte

	readMu  sync.Mutex
	readBuf []byte

	writeMu sync.Mutex
}

// 确保实现接口
var _ net.Conn = (*Conn)(nil)

// Read 读取并解密
func (c *Conn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if len(c.readBuf) > 0 {
		n := copy(p, c.readBuf)
		c.readBuf = c.readBuf[n:]
		return n, nil
	}

	for {
		frame, err := readFrame(c.raw)
		if err != nil {
			return 0, err
		}
		plaintext, err := c.recvCS.Decrypt(nil, nil, frame)
		if err != nil {
			return 0, fmt.Errorf("decrypt: %w", err)
		}
		// 空帧合法，继续读取下一帧
		if len(plaintext) == 0 {
			continue
		}

		n := copy(p, plaintext)
		if n < len(plaintext) {
			c.readBuf = plaintext[n:]
		}
		return n, nil
	}
}

// Write 加密并写入
//
// 超过单帧容量的数据被拆成多帧。
func (c *Conn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	written := 0
	for written < len(p) {
		end := min(written+maxPlaintext, len(p))

		ciphertext, err := c.sendCS.Encrypt(nil, nil, p[written:end])
		if err != nil {
			return written, fmt.Errorf("encrypt: %w", err)
		}
		if err := writeFrame(c.raw, ciphertext); err != nil {
			return written, err
		}
		written = end
	}
	return written, nil
}

// Close 关闭底层连接
func (c *Conn) Close() error {
	return c.raw.Close()
}

// LocalStatic 返回本端 Noise 静态公钥
func (c *Conn) LocalStatic() []byte {
	return append([]byte(nil), c.localStatic...)
}

// RemoteStatic 返回对端 Noise 静态公钥
func (c *Conn) RemoteStatic() []byte {
	return append([]byte(nil), c.remoteStatic...)
}

// Unwrap 返回底层原始连接
func (c *Conn) Unwrap() io.ReadWriteCloser {
	return c.raw
}

// LocalAddr 返回本地地址
func (c *Conn) LocalAddr() net.Addr {
	return netconn.LocalAddr(c.raw)
}

// RemoteAddr 返回远端地址
func (c *Conn) RemoteAddr() net.Addr {
	return netconn.RemoteAddr(c.raw)
}

// SetDeadline 设置读写截止时间
func (c *Conn) SetDeadline(t time.Time) error {
	return netconn.SetDeadline(c.raw, t)
}

// SetReadDeadline 设置读截止时间
func (c *Conn) SetReadDeadline(t time.Time) error {
	return netconn.SetReadDeadline(c.raw, t)
}

// SetWriteDeadline 设置写截止时间
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return netconn.SetWriteDeadline(c.raw, t)
}
