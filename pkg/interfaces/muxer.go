// Package interfaces 定义 go-swarm 公共接口
//
// 本文件定义 MuxedConn 接口，抽象流多路复用连接。
package interfaces

import (
	"context"
	"net"
)

// MuxedConn 定义多路复用连接接口
//
// 根包 Swarm 在最外层 API 边界把具体的多路复用输出擦除为该接口。
type MuxedConn interface {
	// OpenStream 打开新流
	OpenStream(ctx context.Context) (net.Conn, error)

	// AcceptStream 接受新流
	AcceptStream(ctx context.Context) (net.Conn, error)

	// NumStreams 返回当前打开的流数量
	NumStreams() int

	// IsClosed 检查连接是否已关闭
	IsClosed() bool

	// Close 关闭连接
	Close() error
}
