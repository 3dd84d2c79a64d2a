package wire

import "github.com/tonbin/ton/endian"

// ReadLen decodes a size-classed length field from buf, which must be
// exactly sc.Width() bytes, little-endian (spec.md §4.1).
func ReadLen(buf []byte, sc SizeClass) uint64 {
	engine := endian.Wire()

	switch sc.Width() {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(engine.Uint16(buf))
	case 4:
		return uint64(engine.Uint32(buf))
	case 8:
		return engine.Uint64(buf)
	default:
		return 0
	}
}
