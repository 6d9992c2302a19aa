package mcp7940m

// decToBcd packs a value 0-99 into two BCD nibbles, tens high and ones low.
// Values above 99 overflow into the upper bits of the tens nibble.
func decToBcd(dec uint8) uint8 {
	return dec/10<<4 | dec%10
}

// bcdToDec converts a two-nibble BCD byte to its binary value. Any control
// bits must already be masked off. A nibble above 9 (which the chip never
// produces) yields a value above 99.
func bcdToDec(bcd uint8) uint8 {
	return bcd>>4*10 + bcd&0x0F
}
