package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.B = append(bb.B, []byte("test")...)
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.B = append(bb.B, []byte(" data")...)
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.B)

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.B)
}

func TestByteBuffer_Slice(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("0123456789"))

	assert.Equal(t, []byte("234"), bb.Slice(2, 5))
}

func TestByteBuffer_Slice_InvalidIndices(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("abcd"))

	assert.Panics(t, func() { bb.Slice(-1, 2) })
	assert.Panics(t, func() { bb.Slice(3, 1) })
	assert.Panics(t, func() { bb.Slice(0, 100) })
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.SetLength(5)
	assert.Equal(t, 5, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(100) })
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(8)

	ok := bb.Extend(4)
	assert.True(t, ok)
	assert.Equal(t, 4, bb.Len())

	ok = bb.Extend(100)
	assert.False(t, ok, "Extend should fail when capacity is insufficient")
	assert.Equal(t, 4, bb.Len(), "failed Extend must not change length")
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.ExtendOrGrow(100)

	assert.Equal(t, 100, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 100)
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.Grow(StreamBufferDefaultSize * 2)

	assert.GreaterOrEqual(t, bb.Cap(), StreamBufferDefaultSize*2)
}

func TestByteBuffer_Grow_LargeBufferGrowsByQuarter(t *testing.T) {
	bb := NewByteBuffer(8 * StreamBufferDefaultSize)
	bb.SetLength(bb.Cap())
	before := bb.Cap()

	bb.Grow(1)

	assert.Greater(t, bb.Cap(), before)
}

func TestByteBuffer_Grow_NoOpWhenCapacitySufficient(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("hi"))
	before := bb.Cap()

	bb.Grow(4)

	assert.Equal(t, before, bb.Cap())
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)

	n, err := bb.Write([]byte("payload"))

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []byte("payload"), bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	bb.MustWrite([]byte("written"))

	var sink writeCounter
	n, err := bb.WriteTo(&sink)

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "written", sink.String())
}

type writeCounter struct {
	data []byte
}

func (w *writeCounter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writeCounter) String() string { return string(w.data) }

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	pool := NewByteBufferPool(64, 1024)

	bb := pool.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("reuse me"))
	pool.Put(bb)

	again := pool.Get()
	assert.Equal(t, 0, again.Len(), "Put must reset before returning to the pool")
}

func TestByteBufferPool_Put_NilIsNoOp(t *testing.T) {
	pool := NewByteBufferPool(64, 1024)

	assert.NotPanics(t, func() { pool.Put(nil) })
}

func TestByteBufferPool_Put_DiscardsOversizedBuffers(t *testing.T) {
	pool := NewByteBufferPool(64, 128)

	bb := NewByteBuffer(256)
	pool.Put(bb)

	got := pool.Get()
	assert.NotSame(t, bb, got, "oversized buffer must not be retained")
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	pool := NewByteBufferPool(StreamBufferDefaultSize, StreamBufferMaxThreshold)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := pool.Get()
			bb.MustWrite([]byte("concurrent"))
			pool.Put(bb)
		}()
	}
	wg.Wait()
}

// =============================================================================
// Default pool helpers
// =============================================================================

func TestGetPutStreamBuffer(t *testing.T) {
	bb := GetStreamBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("stream"))
	PutStreamBuffer(bb)
}

func TestGetPutDocumentBuffer(t *testing.T) {
	bb := GetDocumentBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("document"))
	PutDocumentBuffer(bb)
}

func BenchmarkStreamBufferGetPut(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		bb := GetStreamBuffer()
		bb.MustWrite([]byte("0123456789"))
		PutStreamBuffer(bb)
	}
}
