// Package interfaces 定义 go-swarm 公共接口
//
// 本文件定义协议协商原语契约。
package interfaces

import (
	"context"
	"io"

	"github.com/dep2p/go-swarm/pkg/types"
)

// MatchFunc 协议名匹配谓词
//
// local 为本端候选名，remote 为对端提出的名字。
type MatchFunc func(local, remote types.ProtocolID) bool

// Candidate 协商候选
type Candidate struct {
	Name  types.ProtocolID
	Match MatchFunc // nil 时按 types.Exact 匹配
}

// Matches 判断对端协议名是否匹配本候选
func (c Candidate) Matches(remote types.ProtocolID) bool {
	if c.Match == nil {
		return types.Exact(c.Name, remote)
	}
	return c.Match(c.Name, remote)
}

// Negotiator 定义协议协商原语
//
// 两个入口返回选中候选在列表中的下标。除协商握手本身的字节外，
// 连接上的字节流保持不变。
type Negotiator interface {
	// SelectAsDialer 以发起方角色协商
	SelectAsDialer(ctx context.Context, rwc io.ReadWriteCloser, candidates []Candidate) (int, error)

	// SelectAsListener 以接收方角色协商
	SelectAsListener(ctx context.Context, rwc io.ReadWriteCloser, candidates []Candidate) (int, error)
}
