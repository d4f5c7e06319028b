package noise

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/flynn/noise"
	"golang.org/x/crypto/curve25519"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/lib/netconn"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/security/noise")

// ProtocolID 协商使用的协议名
const ProtocolID types.ProtocolID = "/noise"

// Config Noise 升级配置
type Config struct {
	// HandshakeTimeout 握手超时，0 表示只受 ctx 约束
	HandshakeTimeout time.Duration

	// StaticKey Curve25519 静态私钥（32 字节），为空时随机生成
	StaticKey []byte
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 30 * time.Second,
	}
}

// Upgrade Noise 加密升级
//
// 同一个 Upgrade 在所有连接上使用同一个静态密钥对，可被并发使用。
type Upgrade[C io.ReadWriteCloser] struct {
	cfg    Config
	static noise.DHKey
}

// 确保实现接口
var _ pkgif.ConnectionUpgrade[io.ReadWriteCloser, types.ProtocolID, *Conn] = (*Upgrade[io.ReadWriteCloser])(nil)

// New 创建 Noise 升级
func New[C io.ReadWriteCloser](cfg Config) (*Upgrade[C], error) {
	static, err := staticKeypair(cfg.StaticKey)
	if err != nil {
		return nil, err
	}
	return &Upgrade[C]{cfg: cfg, static: static}, nil
}

// staticKeypair 由私钥派生密钥对，私钥为空时随机生成
func staticKeypair(priv []byte) (noise.DHKey, error) {
	if len(priv) == 0 {
		return noise.DH25519.GenerateKeypair(rand.Reader)
	}
	if len(priv) != curve25519.ScalarSize {
		return noise.DHKey{}, ErrInvalidStaticKey
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return noise.DHKey{}, fmt.Errorf("derive static public key: %w", err)
	}
	return noise.DHKey{Private: append([]byte(nil), priv...), Public: pub}, nil
}

// Protocols 返回 [/noise]
func (u *Upgrade[C]) Protocols() []pkgif.Protocol[types.ProtocolID] {
	return []pkgif.Protocol[types.ProtocolID]{{Name: ProtocolID, ID: ProtocolID}}
}

// LocalStatic 返回本端静态公钥
func (u *Upgrade[C]) LocalStatic() []byte {
	return append([]byte(nil), u.static.Public...)
}

// Upgrade 执行握手并返回加密连接
//
// DirOutbound 为发起者，DirInbound 为响应者。
func (u *Upgrade[C]) Upgrade(ctx context.Context, conn C, _ types.ProtocolID, dir types.Direction) (*Conn, error) {
	deadline, hasDeadline := ctx.Deadline()
	if u.cfg.HandshakeTimeout > 0 {
		if d := time.Now().Add(u.cfg.HandshakeTimeout); !hasDeadline || d.Before(deadline) {
			deadline, hasDeadline = d, true
		}
	}
	if hasDeadline {
		if err := netconn.SetDeadline(conn, deadline); err == nil {
			defer netconn.ClearDeadline(conn)
		}
	}

	// 不支持截止时间的连接靠关闭来中断握手
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	logger.Debug("Noise 握手", "direction", dir)

	send, recv, remoteStatic, err := performHandshake(conn, u.static, dir.IsInitiator())
	if !stop() && err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		logger.Debug("Noise 握手失败", "direction", dir, "error", err)
		return nil, fmt.Errorf("noise handshake: %w", err)
	}

	logger.Debug("Noise 握手成功", "direction", dir)
	return &Conn{
		raw:          conn,
		sendCS:       send,
		recvCS:       recv,
		localStatic:  u.static.Public,
		remoteStatic: remoteStatic,
	}, nil
}
