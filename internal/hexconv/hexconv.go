package hexconv

// Halfbyte maps an ASCII character to the value of the hexadecimal digit it
// stands for. Entries of characters, which aren't hexadecimal digits, are
// set to 0xff, thereby an OR of any two invalid entries exceeds 0x0f.
var Halfbyte = newHalfbyteTable()

func newHalfbyteTable() (table [256]byte) {
	for i := range table {
		table[i] = 0xff
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = 10 + c - 'a'
	}

	for c := byte('A'); c <= 'F'; c++ {
		table[c] = 10 + c - 'A'
	}

	return table
}
