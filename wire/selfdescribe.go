package wire

// SelfDescribe is the fixed 4-byte magic tag a TON stream may carry after
// its top-level header, so content sniffers can identify the format
// without decoding it (spec.md §6.1, §9 open question 3).
//
// Decoders MUST tolerate its absence: it is located at the stream's end
// in write order (i.e. the very last bytes a writer emits) and is not
// part of the value itself, so a reverse reader skips it before parsing
// the top-level value's prefix.
var SelfDescribe = [4]byte{'T', 'O', 'N', '1'}

// HasSelfDescribe reports whether the last 4 bytes of data match the
// SelfDescribe marker.
func HasSelfDescribe(data []byte) bool {
	if len(data) < len(SelfDescribe) {
		return false
	}

	tail := data[len(data)-len(SelfDescribe):]
	for i, b := range SelfDescribe {
		if tail[i] != b {
			return false
		}
	}

	return true
}
