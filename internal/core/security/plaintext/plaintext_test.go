package plaintext

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-swarm/pkg/types"
)

func TestUpgrade_Protocols(t *testing.T) {
	u := New[net.Conn]()

	protos := u.Protocols()
	require.Len(t, protos, 1)
	assert.Equal(t, ProtocolID, protos[0].Name)
	assert.Equal(t, "/plaintext/1.0.0", protos[0].Name.String())

	// 每次调用返回新切片
	protos[0].Name = "/changed"
	assert.Equal(t, ProtocolID, u.Protocols()[0].Name)
}

func TestUpgrade_Identity(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	u := New[net.Conn]()
	for _, dir := range []types.Direction{types.DirOutbound, types.DirInbound} {
		out, err := u.Upgrade(context.Background(), a, ProtocolID, dir)
		require.NoError(t, err)
		assert.True(t, out == a, "应返回同一个连接")
	}
}
