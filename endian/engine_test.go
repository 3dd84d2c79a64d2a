package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	engine := Wire()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)
}

func TestWireByteOrder(t *testing.T) {
	engine := Wire()

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)

	// Little-endian puts the LSB first, matching spec.md §6.1.
	require.Equal(t, byte(0x02), bytes[0])
	require.Equal(t, byte(0x01), bytes[1])
	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestWireAppend(t *testing.T) {
	engine := Wire()

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	buf = engine.AppendUint64(buf, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf[4:12]))
}

func TestWireStable(t *testing.T) {
	// Wire() must always return the same engine: the format does not
	// negotiate endianness (spec.md §1 Non-goals).
	a := Wire()
	b := Wire()
	require.Equal(t, a, b)
}
