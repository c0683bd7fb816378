package pool

import "unsafe"

// alignedOffset returns the index into raw at which raw[index:] begins on
// a 64-byte aligned address, assuming raw was over-allocated by at least
// alignment/8 float64 elements to guarantee such an index exists within
// bounds.
func alignedOffset(raw []float64) int {
	if len(raw) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&raw[0]))
	misalign := addr % alignment
	if misalign == 0 {
		return 0
	}
	return int((alignment - misalign) / unsafe.Sizeof(raw[0]))
}
