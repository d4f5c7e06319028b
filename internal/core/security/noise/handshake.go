package noise

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/flynn/noise"
)

// maxFrameSize 单帧最大长度（2 字节长度前缀）
const maxFrameSize = 1<<16 - 1

// cipherSuite Noise_XX_25519_ChaChaPoly_SHA256
var cipherSuite = noise.NewCipherSuite(noise.DH25519, noise.CipherChaChaPoly, noise.HashSHA256)

// ============================================================================
// Noise XX 握手
// ============================================================================

// performHandshake 在 rwc 上执行 Noise XX 握手
//
// 返回发送、接收两个方向的 CipherState 以及对端静态公钥。
func performHandshake(rwc io.ReadWriter, static noise.DHKey, isInitiator bool) (send, recv *noise.CipherState, remoteStatic []byte, err error) {
	hs, err := noise.NewHandshakeState(noise.Config{
		CipherSuite:   cipherSuite,
		Pattern:       noise.HandshakeXX,
		Initiator:     isInitiator,
		StaticKeypair: static,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create handshake state: %w", err)
	}

	if isInitiator {
		send, recv, err = clientHandshake(rwc, hs)
	} else {
		send, recv, err = serverHandshake(rwc, hs)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	remoteStatic = hs.PeerStatic()
	if len(remoteStatic) != 32 {
		return nil, nil, nil, fmt.Errorf("%w: remote static key length %d", ErrInvalidHandshake, len(remoteStatic))
	}
	return send, recv, remoteStatic, nil
}

// clientHandshake 发起者握手
//
//  1. -> e
//  2. <- e, ee, s, es
//  3. -> s, se
func clientHandshake(rwc io.ReadWriter, hs *noise.HandshakeState) (*noise.CipherState, *noise.CipherState, error) {
	msg1, _, _, err := hs.WriteMessage(nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("write message 1: %w", err)
	}
	if err := writeFrame(rwc, msg1); err != nil {
		return nil, nil, fmt.Errorf("send message 1: %w", err)
	}

	msg2, err := readFrame(rwc)
	if err != nil {
		return nil, nil, fmt.Errorf("receive message 2: %w", err)
	}
	if _, _, _, err := hs.ReadMessage(nil, msg2); err != nil {
		return nil, nil, fmt.Errorf("%w: read message 2: %v", ErrInvalidHandshake, err)
	}

	msg3, cs1, cs2, err := hs.WriteMessage(nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("write message 3: %w", err)
	}
	if err := writeFrame(rwc, msg3); err != nil {
		return nil, nil, fmt.Errorf("send message 3: %w", err)
	}

	// cs1 = 发送密钥，cs2 = 接收密钥（对于发起者）
	return cs1, cs2, nil
}

// serverHandshake 响应者握手
//
//  1. <- e
//  2. -> e, ee, s, es
//  3. <- s, se
func serverHandshake(rwc io.ReadWriter, hs *noise.HandshakeState) (*noise.CipherState, *noise.CipherState, error) {
	msg1, err := readFrame(rwc)
	if err != nil {
		return nil, nil, fmt.Errorf("receive message 1: %w", err)
	}
	if _, _, _, err := hs.ReadMessage(nil, msg1); err != nil {
		return nil, nil, fmt.Errorf("%w: read message 1: %v", ErrInvalidHandshake, err)
	}

	msg2, _, _, err := hs.WriteMessage(nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("write message 2: %w", err)
	}
	if err := writeFrame(rwc, msg2); err != nil {
		return nil, nil, fmt.Errorf("send message 2: %w", err)
	}

	msg3, err := readFrame(rwc)
	if err != nil {
		return nil, nil, fmt.Errorf("receive message 3: %w", err)
	}
	_, cs1, cs2, err := hs.ReadMessage(nil, msg3)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read message 3: %v", ErrInvalidHandshake, err)
	}

	// cs1 = 接收密钥，cs2 = 发送密钥（对于响应者，与发起者相反）
	return cs2, cs1, nil
}

// ============================================================================
// 分帧
// ============================================================================

// writeFrame 写入帧（2 字节长度 + 数据），一次 Write 完成
func writeFrame(w io.Writer, data []byte) error {
	if len(data) > maxFrameSize {
		return fmt.Errorf("frame too large: %d", len(data))
	}
	buf := make([]byte, 2+len(data))
	binary.BigEndian.PutUint16(buf, uint16(len(data)))
	copy(buf[2:], data)

	_, err := w.Write(buf)
	return err
}

// readFrame 读取帧（2 字节长度 + 数据）
func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint16(lenBuf[:])
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
