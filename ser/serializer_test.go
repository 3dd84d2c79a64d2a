package ser

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeBoolLiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeBool(true))
	assert.Equal(t, []byte{0x05}, buf.Bytes())
}

func TestSerializeUint8LiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeU8(42))
	assert.Equal(t, []byte{0x2A, 0x0C}, buf.Bytes())
}

func TestSerializeInt16LiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeI16(-42))
	assert.Equal(t, []byte{0xD6, 0xFF, 0x09}, buf.Bytes())
}

func TestSerializeStringLiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeStr("Hello, world!"))

	want := append([]byte("Hello, world!"), 0x0D, 0x14)
	assert.Equal(t, want, buf.Bytes())
}

func TestSerializeSequenceLiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	start := s.BeginArray()
	require.NoError(t, s.SerializeStr("Hello, world!"))
	require.NoError(t, s.SerializeU8(42))
	require.NoError(t, s.EndArray(start))

	want := append([]byte("Hello, world!"), 0x0D, 0x14)
	want = append(want, 0x2A, 0x0C)
	want = append(want, 0x11, 0x2C)
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, 0, s.Depth())
}

func TestSerializeStructLiteralBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	start := s.BeginObject()

	require.NoError(t, s.SerializeStr("Hello, world!"))
	require.NoError(t, s.SerializeStr("field1"))

	require.NoError(t, s.SerializeU8(42))
	require.NoError(t, s.SerializeStr("field2"))

	require.NoError(t, s.EndObject(start))

	var want []byte
	want = append(want, []byte("Hello, world!")...)
	want = append(want, 0x0D, 0x14)
	want = append(want, []byte("field1")...)
	want = append(want, 0x06, 0x14)
	want = append(want, 0x2A, 0x0C)
	want = append(want, []byte("field2")...)
	want = append(want, 0x06, 0x14)
	want = append(want, 0x21, 0x30)

	assert.Equal(t, want, buf.Bytes())
}

func TestSerializeNoneAndUndefined(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeNone())
	require.NoError(t, s.SerializeUndefined())

	assert.Equal(t, []byte{0x00, 0xFC}, buf.Bytes())
}

func TestSerializePaddingZeroIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializePadding(0))
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, uint64(0), s.Size())
}

func TestSerializePaddingEmitsZeros(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializePadding(3))
	assert.Equal(t, []byte{0, 0, 0, 0x03, 0x3C}, buf.Bytes())
}

func TestSerializeEmptyArrayTwoByteFrame(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	start := s.BeginArray()
	require.NoError(t, s.EndArray(start))

	assert.Equal(t, []byte{0x00, 0x2C}, buf.Bytes())
}

func TestSerializeUUID(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	var u [16]byte
	for i := range u {
		u[i] = byte(i)
	}

	require.NoError(t, s.SerializeUUID(u))
	assert.Equal(t, append(u[:], 0x1C), buf.Bytes())
}

func TestSerializeTimestampFixedSize8(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeTimestamp(1000))
	require.Len(t, buf.Bytes(), 9)

	prefix := buf.Bytes()[8]
	assert.Equal(t, byte(0x27), prefix) // TIMESTAMP(001001) | size8(11)
}

func TestSerializeDuration(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeDuration(1500 * time.Millisecond))
	require.Len(t, buf.Bytes(), 9)
}

func TestSerializeWrappedJSONRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	err := s.SerializeWrappedJSON("{not json")
	assert.Error(t, err)
}

func TestSerializeStrRejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	err := s.SerializeStr(string([]byte{0xff, 0xfe}))
	assert.Error(t, err)
}

func TestFinishRejectsOpenComposite(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.BeginArray()

	_, err := s.Finish()
	assert.Error(t, err)
}

func TestFinishAppendsSelfDescribe(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, WithSelfDescribe())

	require.NoError(t, s.SerializeNone())
	_, err := s.Finish()
	require.NoError(t, err)

	assert.Equal(t, []byte{0x00, 'T', 'O', 'N', '1'}, buf.Bytes())
}

func TestWriteAfterFinishFails(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	_, err := s.Finish()
	require.NoError(t, err)

	err = s.SerializeNone()
	assert.Error(t, err)
}

func TestSerializeNewtypeVariant(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	err := s.SerializeNewtypeVariant("Tag", func(inner *Serializer) error {
		start := inner.BeginArray()
		if err := inner.SerializeU8(1); err != nil {
			return err
		}

		return inner.EndArray(start)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Depth())
}

func TestSerializeSomeDelegates(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.SerializeSome(func(inner *Serializer) error {
		return inner.SerializeU8(7)
	}))
	assert.Equal(t, []byte{0x07, 0x0C}, buf.Bytes())
}
