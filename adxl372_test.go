// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

var errBus = errors.New("bus fault")

// fakeTransport scripts register traffic for sequences i2ctest cannot
// express, such as mid-sequence bus faults and self-test progression.
type fakeTransport struct {
	regs   map[uint8]uint8
	writes []regWrite
	ops    int
	failAt int // 1-based op index that fails; 0 disables

	frames   [][3]int16 // successive samples served from the data registers
	frameIdx int

	stDoneAfter int // self-test reads before ST_DONE appears; 0 means never
	stUserPass  bool
	stReads     int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		regs: map[uint8]uint8{
			RegDevIDAD:  devIDAnalog,
			RegDevIDMST: devIDMEMS,
			RegPartID:   partID,
			RegRevID:    0x02,
		},
	}
}

func (f *fakeTransport) step() error {
	f.ops++
	if f.failAt > 0 && f.ops >= f.failAt {
		return errBus
	}
	return nil
}

func (f *fakeTransport) ReadRegister(reg uint8) (uint8, error) {
	if err := f.step(); err != nil {
		return 0, err
	}
	v := f.regs[reg]
	if reg == RegSelfTest {
		f.stReads++
		if f.stDoneAfter > 0 && f.stReads > f.stDoneAfter {
			v |= selfTestDoneBit
			if f.stUserPass {
				v |= selfTestUserBit
			}
		}
	}
	return v, nil
}

func (f *fakeTransport) WriteRegister(reg, val uint8) error {
	if err := f.step(); err != nil {
		return err
	}
	f.regs[reg] = val
	f.writes = append(f.writes, regWrite{reg, val})
	return nil
}

func (f *fakeTransport) ReadBurst(reg uint8, buf []byte) error {
	if err := f.step(); err != nil {
		return err
	}
	if reg == RegXDataH && len(buf) == rawSampleBytes {
		var frame [3]int16
		if len(f.frames) > 0 {
			frame = f.frames[f.frameIdx]
			if f.frameIdx < len(f.frames)-1 {
				f.frameIdx++
			}
		}
		for i, v := range frame {
			u := uint16(v) << 4
			buf[2*i] = byte(u >> 8)
			buf[2*i+1] = byte(u)
		}
		return nil
	}
	for i := range buf {
		buf[i] = f.regs[reg+uint8(i)]
	}
	return nil
}

func (f *fakeTransport) WriteBurst(reg uint8, data []byte) error {
	for i, v := range data {
		if err := f.WriteRegister(reg+uint8(i), v); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTransport) String() string { return "fake" }

// delayLog records the settling waits instead of sleeping.
type delayLog struct {
	slept []time.Duration
}

func (d *delayLog) sleep(t time.Duration) {
	d.slept = append(d.slept, t)
}

func measurementConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig().ODR(ODR3200Hz).Bandwidth(BW800Hz).PowerMode(Measurement).Build()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestInit(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegDevIDAD}, R: []byte{0xAD, 0x1D, 0xFA, 0x02}},
			{Addr: DefaultI2CAddr, W: []byte{RegReset, resetCode}},
			{Addr: DefaultI2CAddr, W: []byte{RegTiming, 0x60}},
			{Addr: DefaultI2CAddr, W: []byte{RegMeasure, 0x02}},
			{Addr: DefaultI2CAddr, W: []byte{RegPowerCtl, 0x03}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	dl := &delayLog{}
	if err := dev.Init(dl.sleep); err != nil {
		t.Fatal(err)
	}
	if !dev.Ready() {
		t.Fatal("device not ready after successful Init")
	}
	want := []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 370 * time.Millisecond}
	if len(dl.slept) != len(want) {
		t.Fatalf("slept %v, want %v", dl.slept, want)
	}
	for i := range want {
		if dl.slept[i] != want[i] {
			t.Errorf("delay %d = %s, want %s", i, dl.slept[i], want[i])
		}
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInitStandbyskipsSettle(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegDevIDAD}, R: []byte{0xAD, 0x1D, 0xFA, 0x01}},
			{Addr: DefaultI2CAddr, W: []byte{RegReset, resetCode}},
			{Addr: DefaultI2CAddr, W: []byte{RegTiming, 0x00}},
			{Addr: DefaultI2CAddr, W: []byte{RegMeasure, 0x00}},
			{Addr: DefaultI2CAddr, W: []byte{RegPowerCtl, 0x00}},
		},
	}
	cfg, err := NewConfig().Build()
	if err != nil {
		t.Fatal(err)
	}
	dev := NewI2C(&bus, DefaultI2CAddr, cfg)
	dl := &delayLog{}
	if err := dev.Init(dl.sleep); err != nil {
		t.Fatal(err)
	}
	// No filter settle wait when the chip stays in standby.
	if len(dl.slept) != 2 {
		t.Fatalf("slept %v, want power-up and reset delays only", dl.slept)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInitIdentityMismatch(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			// An ADXL345 answers 0xE5 in its first ID register.
			{Addr: DefaultI2CAddr, W: []byte{RegDevIDAD}, R: []byte{0xE5, 0x00, 0x00, 0x00}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	err := dev.Init((&delayLog{}).sleep)
	var ide *IdentityError
	if !errors.As(err, &ide) {
		t.Fatalf("got %v, want IdentityError", err)
	}
	if ide.DeviceID != 0xE5 {
		t.Errorf("DeviceID = 0x%02X, want 0xE5", ide.DeviceID)
	}
	if dev.Ready() {
		t.Fatal("device ready after failed Init")
	}
	// Closing verifies no configuration write followed the mismatch.
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInitStopsOnWriteFailure(t *testing.T) {
	// Ops: 1 ID read, 2 reset, 3 TIMING, 4 MEASURE (fails).
	ft := newFakeTransport()
	ft.failAt = 4
	dev := New(ft, measurementConfig(t))
	err := dev.Init((&delayLog{}).sleep)
	if !errors.Is(err, errBus) {
		t.Fatalf("got %v, want wrapped bus fault", err)
	}
	if dev.Ready() {
		t.Fatal("device ready after failed Init")
	}
	want := []regWrite{{RegReset, resetCode}, {RegTiming, 0x60}}
	if len(ft.writes) != len(want) {
		t.Fatalf("writes %v, want %v", ft.writes, want)
	}
	for i := range want {
		if ft.writes[i] != want[i] {
			t.Errorf("write %d = %v, want %v", i, ft.writes[i], want[i])
		}
	}
}

func TestInitDeterministicOrder(t *testing.T) {
	// The same settings applied in different setter order must program
	// the chip identically.
	a, err := NewConfig().ODR(ODR1600Hz).Bandwidth(BW400Hz).PowerMode(Measurement).Noise(NoiseLow).Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewConfig().Noise(NoiseLow).PowerMode(Measurement).Bandwidth(BW400Hz).ODR(ODR1600Hz).Build()
	if err != nil {
		t.Fatal(err)
	}
	var logs [2][]regWrite
	for i, cfg := range []Config{a, b} {
		ft := newFakeTransport()
		if err := New(ft, cfg).Init((&delayLog{}).sleep); err != nil {
			t.Fatal(err)
		}
		logs[i] = ft.writes
	}
	if fmt.Sprint(logs[0]) != fmt.Sprint(logs[1]) {
		t.Fatalf("write sequences differ: %v vs %v", logs[0], logs[1])
	}
}

func TestReadRawNotReady(t *testing.T) {
	bus := i2ctest.Playback{}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	if _, err := dev.ReadRaw(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("ReadRaw: got %v, want ErrNotReady", err)
	}
	if _, err := dev.ReadMilliG(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("ReadMilliG: got %v, want ErrNotReady", err)
	}
	if _, err := dev.ReadXRaw(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("ReadXRaw: got %v, want ErrNotReady", err)
	}
	// Closing the playback verifies not a single bus transaction ran.
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadRaw(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegXDataH}, R: []byte{0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	dev.state = stateReady
	got, err := dev.ReadRaw()
	if err != nil {
		t.Fatal(err)
	}
	if want := [3]int16{1, -1, 291}; got != want {
		t.Fatalf("ReadRaw() = %v, want %v", got, want)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadMilliG(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegXDataH}, R: []byte{0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	dev.state = stateReady
	got, err := dev.ReadMilliG()
	if err != nil {
		t.Fatal(err)
	}
	if want := [3]int32{100, -100, 29100}; got != want {
		t.Fatalf("ReadMilliG() = %v, want %v", got, want)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadSingleAxis(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegYDataH}, R: []byte{0xFF, 0xF0}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	dev.state = stateReady
	got, err := dev.ReadYRaw()
	if err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Fatalf("ReadYRaw() = %d, want -1", got)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestUnpackAxis(t *testing.T) {
	cases := []struct {
		high, low byte
		want      int16
	}{
		{0x00, 0x00, 0},
		{0x00, 0x10, 1},
		{0xFF, 0xF0, -1},
		{0x12, 0x34, 291},
		{0x7F, 0xF0, 2047},
		{0x80, 0x00, -2048},
		{0xFF, 0xFF, -1}, // reserved low bits must not disturb the value
	}
	for _, tc := range cases {
		if got := unpackAxis(tc.high, tc.low); got != tc.want {
			t.Errorf("unpackAxis(0x%02X, 0x%02X) = %d, want %d", tc.high, tc.low, got, tc.want)
		}
	}
}

func TestReadStatus(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegStatus}, R: []byte{0x41, 0x20}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	st, err := dev.ReadStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !st.DataReady || !st.Awake || !st.Activity {
		t.Errorf("status %+v, want DataReady, Awake and Activity set", st)
	}
	if st.FIFOFull || st.Inactivity {
		t.Errorf("status %+v, spurious flags set", st)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigDecodes(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegTiming}, R: []byte{0x60, 0x02, 0x03}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	got, err := dev.ReadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got != measurementConfig(t) {
		t.Fatalf("ReadConfig() = %+v, want %+v", got, measurementConfig(t))
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHalt(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegPowerCtl}, R: []byte{0x03}},
			{Addr: DefaultI2CAddr, W: []byte{RegPowerCtl, 0x00}},
		},
	}
	dev := NewI2C(&bus, DefaultI2CAddr, measurementConfig(t))
	dev.state = stateReady
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if dev.Ready() {
		t.Fatal("device still ready after Halt")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	bus := i2ctest.Playback{}
	// Bypass the builder to prove Init itself refuses an illegal
	// combination before any bus traffic.
	dev := NewI2C(&bus, DefaultI2CAddr, Config{odr: ODR400Hz, bandwidth: BW1600Hz})
	if err := dev.Init((&delayLog{}).sleep); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
