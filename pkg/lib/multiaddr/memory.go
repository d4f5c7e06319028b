package multiaddr

import (
	"encoding/binary"
	"fmt"
	"strconv"

	ma "github.com/multiformats/go-multiaddr"
)

// P_MEMORY /memory 协议编号（与 multicodec 表一致）
const P_MEMORY = 0x0309

// ProtoMemory 进程内内存传输协议，值为 64 位端口号
var ProtoMemory = ma.Protocol{
	Name:       "memory",
	Code:       P_MEMORY,
	VCode:      ma.CodeToVarint(P_MEMORY),
	Size:       64,
	Transcoder: ma.NewTranscoderFromFunctions(memoryStB, memoryBtS, memoryValidate),
}

func init() {
	// 较新版本的 go-multiaddr 已内置 memory 协议，重复注册返回的错误可以忽略
	if ma.ProtocolWithCode(P_MEMORY).Code == 0 {
		_ = ma.AddProtocol(ProtoMemory)
	}
}

func memoryStB(s string) ([]byte, error) {
	port, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid memory port %q: %w", s, err)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, port)
	return b, nil
}

func memoryBtS(b []byte) (string, error) {
	if err := memoryValidate(b); err != nil {
		return "", err
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b), 10), nil
}

func memoryValidate(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("invalid memory port length %d", len(b))
	}
	return nil
}

// Memory 构造 /memory/<port> 地址
func Memory(port uint64) ma.Multiaddr {
	return ma.StringCast("/memory/" + strconv.FormatUint(port, 10))
}

// MemoryPort 解析 /memory/<port> 地址
//
// 只接受恰好一个 memory 组件的地址。
func MemoryPort(addr ma.Multiaddr) (uint64, bool) {
	if !HasShape(addr, P_MEMORY) {
		return 0, false
	}
	v, err := addr.ValueForProtocol(P_MEMORY)
	if err != nil {
		return 0, false
	}
	port, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return port, true
}
