package memory

import (
	"errors"
	"math/rand/v2"
	"sync"
)

var (
	// ErrPortInUse 端口已被监听
	ErrPortInUse = errors.New("memory port already in use")

	// ErrConnectionRefused 目标端口没有监听器
	ErrConnectionRefused = errors.New("memory connection refused")
)

// Hub 内存地址空间
//
// 只有同一 Hub 内的传输可以互相拨号。
type Hub struct {
	mu        sync.Mutex
	listeners map[uint64]*Listener
}

var defaultHub = NewHub()

// NewHub 创建独立的地址空间
func NewHub() *Hub {
	return &Hub{listeners: make(map[uint64]*Listener)}
}

// DefaultHub 返回进程级默认地址空间
func DefaultHub() *Hub {
	return defaultHub
}

// register 注册监听器，port 为 0 时分配空闲端口
func (h *Hub) register(port uint64, newListener func(port uint64) *Listener) (*Listener, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if port == 0 {
		for {
			port = rand.Uint64()
			if _, taken := h.listeners[port]; port != 0 && !taken {
				break
			}
		}
	} else if _, taken := h.listeners[port]; taken {
		return nil, ErrPortInUse
	}

	l := newListener(port)
	h.listeners[port] = l
	return l, nil
}

func (h *Hub) unregister(port uint64, l *Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listeners[port] == l {
		delete(h.listeners, port)
	}
}

func (h *Hub) lookup(port uint64) *Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listeners[port]
}

// NumListeners 返回活跃监听器数量
func (h *Hub) NumListeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
