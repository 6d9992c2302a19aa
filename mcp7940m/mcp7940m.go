// Package mcp7940m implements a driver for the MCP7940M Real-Time Clock (RTC), providing read-write of the current
// time, both one field at a time and as a whole. The MCP7940M itself also supports alarms, oscillator trimming, and a
// square wave output on its multifunction pin, but those features remain unimplemented.
//
// The driver always operates the chip in 24-hour mode. The chip increments the weekday register at midnight but leaves
// its meaning to the user; this driver fixes index 0 as Monday.
//
// Datasheet: https://ww1.microchip.com/downloads/en/DeviceDoc/20002292C.pdf
package mcp7940m

import (
	"errors"
	"fmt"
	"time"

	"tinygo.org/x/drivers"
)

// ErrInvalidTime is returned when a value outside a field's valid range is passed to a write accessor. Nothing is sent
// on the bus in that case.
var ErrInvalidTime = errors.New("mcp7940m: time value out of range")

// Weekday is the chip's 3-bit day-of-week index, Monday through Sunday.
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Device holds the bus connection and a snapshot of the seven time fields. The snapshot is only ever updated from
// hardware with control bits masked off, and only ever written to hardware range-checked and BCD-encoded.
type Device struct {
	bus     drivers.I2C
	Address uint8

	seconds uint8
	minutes uint8
	hours   uint8
	weekday Weekday
	date    uint8
	month   uint8
	year    uint8
}

// New creates a new driver on the specified preconfigured I2C bus. The bus is not touched until Configure.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure resets the snapshot to midnight, Monday, January 1st of year 0 and starts the oscillator. The ST bit
// write also resets the chip's elapsed seconds to zero.
func (d *Device) Configure() error {
	d.seconds = 0
	d.minutes = 0
	d.hours = 0
	d.weekday = Monday
	d.date = 1
	d.month = 1
	d.year = 0
	return d.write8(RegSeconds, bitST)
}

// Running reports whether the chip's oscillator is ticking. A stopped oscillator usually means the time was never set
// after power-up.
func (d *Device) Running() (bool, error) {
	raw, err := d.read8(RegWeekday)
	if err != nil {
		return false, err
	}
	return raw&bitOscRun != 0, nil
}

// timeFields lists the per-field register transfers in the order GetTime and SetTime perform them: seconds first,
// year last.
var timeFields = []struct {
	read  func(*Device) error
	write func(*Device) error
}{
	{(*Device).readSeconds, (*Device).writeSeconds},
	{(*Device).readMinutes, (*Device).writeMinutes},
	{(*Device).readHours, (*Device).writeHours},
	{(*Device).readWeekday, (*Device).writeWeekday},
	{(*Device).readDate, (*Device).writeDate},
	{(*Device).readMonth, (*Device).writeMonth},
	{(*Device).readYear, (*Device).writeYear},
}

// GetTime reads all seven time registers into the snapshot. The first transport error aborts the remaining transfers
// and leaves the snapshot partially updated; nothing is retried or rolled back.
func (d *Device) GetTime() error {
	for _, f := range timeFields {
		if err := f.read(d); err != nil {
			return err
		}
	}
	return nil
}

// SetTime writes the snapshot to all seven time registers. The first transport error aborts the remaining transfers
// and leaves the hardware partially updated; nothing is retried or rolled back.
func (d *Device) SetTime() error {
	for _, f := range timeFields {
		if err := f.write(d); err != nil {
			return err
		}
	}
	return nil
}

// Now reads the time registers and returns them as a time.Time in UTC. The chip stores a two-digit year, reported
// relative to 2000.
func (d *Device) Now() (time.Time, error) {
	if err := d.GetTime(); err != nil {
		return time.Time{}, err
	}
	return time.Date(2000+int(d.year), time.Month(d.month), int(d.date),
		int(d.hours), int(d.minutes), int(d.seconds), 0, time.UTC), nil
}

// Set writes t to the time registers and starts the oscillator. Years outside 2000-2099 do not fit the two-digit year
// register and are rejected.
func (d *Device) Set(t time.Time) error {
	if t.Year() < 2000 || t.Year() > 2099 {
		return fmt.Errorf("%w: year %d", ErrInvalidTime, t.Year())
	}
	d.seconds = uint8(t.Second())
	d.minutes = uint8(t.Minute())
	d.hours = uint8(t.Hour())
	d.weekday = fromTimeWeekday(t.Weekday())
	d.date = uint8(t.Day())
	d.month = uint8(t.Month())
	d.year = uint8(t.Year() - 2000)
	return d.SetTime()
}

// ReadSeconds reads the seconds register.
func (d *Device) ReadSeconds() (uint8, error) {
	if err := d.readSeconds(); err != nil {
		return 0, err
	}
	return d.seconds, nil
}

// WriteSeconds sets the seconds register. The ST bit is asserted on every write; the chip requires it for timekeeping
// to run.
func (d *Device) WriteSeconds(seconds uint8) error {
	if seconds > 59 {
		return fmt.Errorf("%w: seconds %d", ErrInvalidTime, seconds)
	}
	d.seconds = seconds
	return d.writeSeconds()
}

// ReadMinutes reads the minutes register.
func (d *Device) ReadMinutes() (uint8, error) {
	if err := d.readMinutes(); err != nil {
		return 0, err
	}
	return d.minutes, nil
}

// WriteMinutes sets the minutes register.
func (d *Device) WriteMinutes(minutes uint8) error {
	if minutes > 59 {
		return fmt.Errorf("%w: minutes %d", ErrInvalidTime, minutes)
	}
	d.minutes = minutes
	return d.writeMinutes()
}

// ReadHours reads the hours register. The result is always a 24-hour value.
func (d *Device) ReadHours() (uint8, error) {
	if err := d.readHours(); err != nil {
		return 0, err
	}
	return d.hours, nil
}

// WriteHours sets the hours register, keeping the chip in 24-hour mode.
func (d *Device) WriteHours(hours uint8) error {
	if hours > 23 {
		return fmt.Errorf("%w: hours %d", ErrInvalidTime, hours)
	}
	d.hours = hours
	return d.writeHours()
}

// ReadWeekday reads the weekday register.
func (d *Device) ReadWeekday() (Weekday, error) {
	if err := d.readWeekday(); err != nil {
		return Monday, err
	}
	return d.weekday, nil
}

// WriteWeekday sets the weekday register.
func (d *Device) WriteWeekday(weekday Weekday) error {
	if weekday > Sunday {
		return fmt.Errorf("%w: weekday %d", ErrInvalidTime, weekday)
	}
	d.weekday = weekday
	return d.writeWeekday()
}

// ReadDate reads the day-of-month register.
func (d *Device) ReadDate() (uint8, error) {
	if err := d.readDate(); err != nil {
		return 0, err
	}
	return d.date, nil
}

// WriteDate sets the day-of-month register. The chip does not know month lengths, so only 1-31 is enforced.
func (d *Device) WriteDate(date uint8) error {
	if date < 1 || date > 31 {
		return fmt.Errorf("%w: date %d", ErrInvalidTime, date)
	}
	d.date = date
	return d.writeDate()
}

// ReadMonth reads the month register.
func (d *Device) ReadMonth() (uint8, error) {
	if err := d.readMonth(); err != nil {
		return 0, err
	}
	return d.month, nil
}

// WriteMonth sets the month register.
func (d *Device) WriteMonth(month uint8) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidTime, month)
	}
	d.month = month
	return d.writeMonth()
}

// ReadYear reads the two-digit year register.
func (d *Device) ReadYear() (uint8, error) {
	if err := d.readYear(); err != nil {
		return 0, err
	}
	return d.year, nil
}

// WriteYear sets the two-digit year register.
func (d *Device) WriteYear(year uint8) error {
	if year > 99 {
		return fmt.Errorf("%w: year %d", ErrInvalidTime, year)
	}
	d.year = year
	return d.writeYear()
}

func (d *Device) readSeconds() error {
	raw, err := d.read8(RegSeconds)
	if err != nil {
		return err
	}
	// discard the ST bit
	d.seconds = bcdToDec(raw &^ bitST)
	return nil
}

func (d *Device) writeSeconds() error {
	return d.write8(RegSeconds, decToBcd(d.seconds)|bitST)
}

func (d *Device) readMinutes() error {
	raw, err := d.read8(RegMinutes)
	if err != nil {
		return err
	}
	d.minutes = bcdToDec(raw)
	return nil
}

func (d *Device) writeMinutes() error {
	return d.write8(RegMinutes, decToBcd(d.minutes))
}

func (d *Device) readHours() error {
	raw, err := d.read8(RegHours)
	if err != nil {
		return err
	}
	// discard the 12/24 bit
	d.hours = bcdToDec(raw &^ bit1224)
	return nil
}

func (d *Device) writeHours() error {
	// bit 6 clear selects 24-hour mode
	return d.write8(RegHours, decToBcd(d.hours)&^bit1224)
}

func (d *Device) readWeekday() error {
	raw, err := d.read8(RegWeekday)
	if err != nil {
		return err
	}
	// discard OSCRUN and the reserved bits; the index is not BCD
	d.weekday = Weekday(raw & maskWeekday)
	return nil
}

func (d *Device) writeWeekday() error {
	return d.write8(RegWeekday, uint8(d.weekday))
}

func (d *Device) readDate() error {
	raw, err := d.read8(RegDate)
	if err != nil {
		return err
	}
	d.date = bcdToDec(raw)
	return nil
}

func (d *Device) writeDate() error {
	return d.write8(RegDate, decToBcd(d.date))
}

func (d *Device) readMonth() error {
	raw, err := d.read8(RegMonth)
	if err != nil {
		return err
	}
	// discard the leap year bit
	d.month = bcdToDec(raw &^ bitLeapYear)
	return nil
}

func (d *Device) writeMonth() error {
	// the leap year bit is read-only, keep it clear
	return d.write8(RegMonth, decToBcd(d.month)&^bitLeapYear)
}

func (d *Device) readYear() error {
	raw, err := d.read8(RegYear)
	if err != nil {
		return err
	}
	d.year = bcdToDec(raw)
	return nil
}

func (d *Device) writeYear() error {
	return d.write8(RegYear, decToBcd(d.year))
}

func (d *Device) read8(reg uint8) (uint8, error) {
	buf := [1]byte{}
	err := d.bus.ReadRegister(d.Address, reg, buf[:])
	return buf[0], err
}

func (d *Device) write8(reg, val uint8) error {
	buf := [1]byte{val}
	return d.bus.WriteRegister(d.Address, reg, buf[:])
}

// fromTimeWeekday converts Go's Sunday-based weekday to the chip's Monday-based index.
func fromTimeWeekday(w time.Weekday) Weekday {
	return Weekday((w + 6) % 7)
}

// TimeWeekday returns w as Go's Sunday-based time.Weekday.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((w + 1) % 7)
}
