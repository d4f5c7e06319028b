package yamux

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/yamux"

	pkgif "github.com/dep2p/go-swarm/pkg/interfaces"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("core/muxer/yamux")

// ProtocolID 协商使用的协议名
const ProtocolID types.ProtocolID = "/yamux/1.0.0"

// Upgrade yamux 多路复用升级
//
// DirOutbound 一端作为 yamux 客户端，DirInbound 一端作为服务端。
type Upgrade[C io.ReadWriteCloser] struct {
	cfg *yamux.Config
}

// 确保实现接口
var _ pkgif.ConnectionUpgrade[io.ReadWriteCloser, types.ProtocolID, *Muxer] = (*Upgrade[io.ReadWriteCloser])(nil)

// New 创建 yamux 升级
func New[C io.ReadWriteCloser](cfg Config) *Upgrade[C] {
	return &Upgrade[C]{cfg: cfg.yamuxConfig()}
}

// Protocols 返回 [/yamux/1.0.0]
func (u *Upgrade[C]) Protocols() []pkgif.Protocol[types.ProtocolID] {
	return []pkgif.Protocol[types.ProtocolID]{{Name: ProtocolID, ID: ProtocolID}}
}

// Upgrade 在连接上建立 yamux 会话
//
// 会话的生命周期与 ctx 无关，由返回的 Muxer 的 Close 结束。
func (u *Upgrade[C]) Upgrade(_ context.Context, conn C, _ types.ProtocolID, dir types.Direction) (*Muxer, error) {
	var (
		session *yamux.Session
		err     error
	)
	isServer := !dir.IsInitiator()
	if isServer {
		session, err = yamux.Server(conn, u.cfg)
	} else {
		session, err = yamux.Client(conn, u.cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("yamux session: %w", err)
	}

	logger.Debug("yamux 会话已建立", "server", isServer)
	return NewMuxer(session, isServer), nil
}
