package pio

func PutU8(b []byte, v uint8) {
	b[0] = v
}

func PutU16BE(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func PutU24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func PutU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// PutUBE writes v as a size byte big endian unsigned integer.
func PutUBE(b []byte, v uint32, size int) {
	switch size {
	case 1:
		PutU8(b, uint8(v))
	case 2:
		PutU16BE(b, uint16(v))
	case 3:
		PutU24BE(b, v)
	case 4:
		PutU32BE(b, v)
	}
}

func WriteLength(b []byte, n *int, v uint32, size int) {
	PutUBE(b[*n:], v, size)
	*n += size
}

func WriteBytes(b []byte, n *int, v []byte) {
	copy(b[*n:], v)
	*n += len(v)
}
