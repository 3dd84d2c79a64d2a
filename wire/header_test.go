package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixRoundTrip(t *testing.T) {
	for f := Family(0); f < 64; f++ {
		if !IsValid(f) {
			continue
		}
		for sc := Size1; sc <= Size8; sc++ {
			p := Prefix(f, sc)
			gotF, gotSC := ParsePrefix(p)
			require.Equal(t, f, gotF)
			require.Equal(t, sc, gotSC)
		}
	}
}

func TestBoolPrefix(t *testing.T) {
	trueFamily, trueSC := ParsePrefix(BoolPrefix(true))
	require.Equal(t, Bool, trueFamily)
	v, ok := ParseBool(trueSC)
	require.True(t, ok)
	require.True(t, v)

	falseFamily, falseSC := ParsePrefix(BoolPrefix(false))
	require.Equal(t, Bool, falseFamily)
	v, ok = ParseBool(falseSC)
	require.True(t, ok)
	require.False(t, v)
}

func TestParseBoolRejectsOtherSizeClasses(t *testing.T) {
	_, ok := ParseBool(Size4)
	require.False(t, ok)
	_, ok = ParseBool(Size8)
	require.False(t, ok)
}

func TestGenerateHeaderMinimality(t *testing.T) {
	cases := []struct {
		payloadLen uint64
		wantWidth  int
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 4},
		{4294967295, 4},
		{4294967296, 8},
	}

	var buf [MaxHeaderLen]byte
	for _, c := range cases {
		header := GenerateHeader(buf[:], String, c.payloadLen)
		require.Len(t, header, c.wantWidth+1)

		gotFamily, gotSC := ParsePrefix(header[len(header)-1])
		require.Equal(t, String, gotFamily)
		require.Equal(t, c.wantWidth, gotSC.Width())

		gotLen := ReadLen(header[:len(header)-1], gotSC)
		require.Equal(t, c.payloadLen, gotLen)
	}
}

func TestGenerateHeaderEmptyComposite(t *testing.T) {
	// Empty composite: length 0 -> size class 1 byte -> 2-byte frame
	// (one length byte, one prefix byte), per spec.md §4.3 edge cases.
	var buf [MaxHeaderLen]byte
	header := GenerateHeader(buf[:], Array, 0)
	require.Equal(t, []byte{0x00, Prefix(Array, Size1)}, header)
}

func TestFixedPrefixRejectsBadWidth(t *testing.T) {
	_, ok := FixedPrefix(Int, 3)
	require.False(t, ok)

	p, ok := FixedPrefix(Int, 4)
	require.True(t, ok)
	f, sc := ParsePrefix(p)
	require.Equal(t, Int, f)
	require.Equal(t, 4, sc.Width())
}

func TestUUIDPrefixFixedWidth(t *testing.T) {
	f, sc := ParsePrefix(UUIDPrefix())
	require.Equal(t, UUID, f)
	require.Equal(t, Size1, sc) // size-class bits are don't-care, fixed at 0
}

func TestNoneAndUndefinedPrefixes(t *testing.T) {
	f, _ := ParsePrefix(NonePrefix())
	require.Equal(t, None, f)

	f, _ = ParsePrefix(UndefinedPrefix())
	require.Equal(t, Undefined, f)
}

func TestSelfDescribeDetection(t *testing.T) {
	data := append([]byte{0x01, 0x02}, SelfDescribe[:]...)
	require.True(t, HasSelfDescribe(data))
	require.False(t, HasSelfDescribe([]byte{0x01, 0x02}))
	require.False(t, HasSelfDescribe(nil))
}

func TestShapeOf(t *testing.T) {
	require.Equal(t, ShapeEmpty, ShapeOf(None))
	require.Equal(t, ShapeEmpty, ShapeOf(Undefined))
	require.Equal(t, ShapeBool, ShapeOf(Bool))
	require.Equal(t, ShapeFixed, ShapeOf(Int))
	require.Equal(t, ShapeFixed, ShapeOf(UUID))
	require.Equal(t, ShapeSized, ShapeOf(String))
	require.Equal(t, ShapeComposite, ShapeOf(Array))
	require.Equal(t, ShapeMeta, ShapeOf(Meta))
}

func TestKeyable(t *testing.T) {
	require.True(t, Keyable(String))
	require.True(t, Keyable(Bool))
	require.False(t, Keyable(Array))
	require.False(t, Keyable(Object))
	require.False(t, Keyable(Meta))
	require.False(t, Keyable(WrappedJSON))
	require.False(t, Keyable(Padding))
}
