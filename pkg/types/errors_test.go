package types

import (
	"errors"
	"fmt"
	"io"
	"testing"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrNotSupportedError(t *testing.T) {
	addr, err := ma.NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	require.NoError(t, err)

	e := NewAddrNotSupportedError(addr)
	wrapped := fmt.Errorf("dial: %w", e)

	assert.True(t, errors.Is(wrapped, ErrAddressNotSupported))
	assert.True(t, IsAddressNotSupported(wrapped))

	got, ok := UnsupportedAddr(wrapped)
	require.True(t, ok)
	assert.True(t, addr.Equal(got))
	assert.Contains(t, e.Error(), "/ip4/127.0.0.1/tcp/4001")
}

func TestTransportError(t *testing.T) {
	e := NewTransportError("dial", nil, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, e, io.ErrUnexpectedEOF)
	assert.False(t, IsAddressNotSupported(e))
	assert.False(t, IsItemError(e))
	assert.True(t, IsClassified(e))
}

func TestNegotiationError(t *testing.T) {
	e := &NegotiationError{
		Direction: DirOutbound,
		Protocols: []ProtocolID{"/noise", "/plaintext/1.0.0"},
		Err:       io.EOF,
	}

	assert.ErrorIs(t, e, ErrNegotiationFailed)
	assert.ErrorIs(t, e, io.EOF)
	assert.True(t, IsItemError(e))
	assert.True(t, IsClassified(fmt.Errorf("outer: %w", e)))
	assert.Contains(t, e.Error(), "/noise /plaintext/1.0.0")
}

func TestUpgradeError(t *testing.T) {
	e := &UpgradeError{Protocol: "/noise", Direction: DirInbound, Err: io.ErrClosedPipe}

	assert.ErrorIs(t, e, ErrUpgradeFailed)
	assert.ErrorIs(t, e, io.ErrClosedPipe)
	assert.NotErrorIs(t, e, ErrNegotiationFailed)
	assert.True(t, IsItemError(e))
}

func TestIsClassified_Plain(t *testing.T) {
	assert.False(t, IsClassified(io.EOF))
	assert.True(t, IsClassified(NewAddrNotSupportedError(nil)))
}
