package mcp7940m

const (
	Address = 0x6F // I2C address for MCP7940M

	RegSeconds = 0x00 // Timekeeping seconds, shares the byte with the ST bit
	RegMinutes = 0x01 // Timekeeping minutes
	RegHours   = 0x02 // Timekeeping hours, shares the byte with the 12/24 bit
	RegWeekday = 0x03 // Day of week index, shares the byte with OSCRUN
	RegDate    = 0x04 // Day of month
	RegMonth   = 0x05 // Month, shares the byte with the leap year flag
	RegYear    = 0x06 // Two-digit year
	RegControl = 0x07 // Control register (MFP output, trim enable)
	RegOscTrim = 0x08 // Oscillator digital trim

	RegAlarm0Seconds = 0x0A // Alarm 0 register bank
	RegAlarm0Minutes = 0x0B
	RegAlarm0Hours   = 0x0C
	RegAlarm0Weekday = 0x0D
	RegAlarm0Date    = 0x0E
	RegAlarm0Month   = 0x0F

	RegAlarm1Seconds = 0x11 // Alarm 1 register bank
	RegAlarm1Minutes = 0x12
	RegAlarm1Hours   = 0x13
	RegAlarm1Weekday = 0x14
	RegAlarm1Date    = 0x15
	RegAlarm1Month   = 0x16
)

// Control and status bits packed into the time registers. Everything except
// the BCD digits must be masked off on read; ST, 12/24 and the leap year bit
// have a fixed policy on write.
const (
	bitST       = 1 << 7 // oscillator start, RegSeconds
	bit1224     = 1 << 6 // 12/24 hour format select, RegHours
	bitOscRun   = 1 << 5 // oscillator running status, RegWeekday
	bitLeapYear = 1 << 5 // leap year status, RegMonth

	maskWeekday = 0x07 // weekday index occupies bits 0-2
)
