package circular

import "math/bits"

// NextExp2 returns the next power of 2 strictly greater than x.  (Useful when
// setting circular buffer or hash table size.)
func NextExp2(x int) int {
	log2 := 63 - bits.LeadingZeros64(uint64(x))
	return 2 << uint32(log2)
}

// CeilExp2 returns the smallest power of 2 >= x.  x must be positive.
func CeilExp2(x int) int {
	if x <= 1 {
		return 1
	}
	return NextExp2(x - 1)
}
