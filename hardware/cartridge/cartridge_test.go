package cartridge_test

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/cartridge"
	"github.com/sixtyfour/core64/internal/ctest"
)

func TestEjectedCartridgeIsOpenBus(t *testing.T) {
	c := cartridge.Eject()
	game, exrom := c.GameExrom()
	ctest.ExpectSuccess(t, game)
	ctest.ExpectSuccess(t, exrom)
	v, err := c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0xFF), v)
}

func Test8KCartridgeAssertsExromOnly(t *testing.T) {
	data := make([]byte, 8192)
	data[0] = 0x42
	c, err := cartridge.NewFromImage("test.bin", data)
	ctest.ExpectSuccess(t, err)
	game, exrom := c.GameExrom()
	ctest.ExpectSuccess(t, game)
	ctest.ExpectFailure(t, exrom)
	v, err := c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x42), v)
	v, err = c.ReadHi(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0xFF), v)
}

func Test16KCartridgeAssertsGameAndExrom(t *testing.T) {
	data := make([]byte, 16384)
	data[0x2000] = 0x99
	c, err := cartridge.NewFromImage("test.bin", data)
	ctest.ExpectSuccess(t, err)
	game, exrom := c.GameExrom()
	ctest.ExpectFailure(t, game)
	ctest.ExpectFailure(t, exrom)
	v, err := c.ReadHi(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x99), v)
}

func TestUnrecognisedSizeRejected(t *testing.T) {
	_, err := cartridge.NewFromImage("bad.bin", make([]byte, 123))
	ctest.ExpectFailure(t, err)
}

func TestUltimaxAssertsExromWithoutGame(t *testing.T) {
	lo := make([]byte, 8192)
	hi := make([]byte, 8192)
	hi[0x1FFC] = 0x00 // reset vector low byte, for illustration only
	c := cartridge.NewUltimax("test.crt", lo, hi)
	game, exrom := c.GameExrom()
	ctest.ExpectFailure(t, game)
	ctest.ExpectSuccess(t, exrom)
}

func TestEasyFlashBankSwitching(t *testing.T) {
	lo := make([]byte, 2*8192)
	lo[8192] = 0x7A
	hi := make([]byte, 2*8192)
	c, err := cartridge.NewEasyFlash("test.crt", lo, hi)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, 2, c.NumBanks())

	ctest.ExpectSuccess(t, c.WriteIO1(0x00, 1))
	ctest.ExpectEquality(t, 1, c.CurrentBank())
	v, err := c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x7A), v)
}

func TestEasyFlashRAMPersistsAcrossIO2(t *testing.T) {
	c, err := cartridge.NewEasyFlash("test.crt", make([]byte, 8192), make([]byte, 8192))
	ctest.ExpectSuccess(t, err)
	ctest.ExpectSuccess(t, c.WriteIO2(0x10, 0x55))
	v, err := c.ReadIO2(0x10)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x55), v)
}

func TestFreezerStartsDisabledWithRAMAtLo(t *testing.T) {
	rom := make([]byte, 4*8192)
	c, err := cartridge.NewFreezer("test.bin", rom)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectSuccess(t, c.WriteLo(0, 0x11))
	v, err := c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x11), v)
}

func TestFreezeButtonForcesUltimaxAndRaisesNMI(t *testing.T) {
	rom := make([]byte, 4*8192)
	rom[0x1000] = 0xEA
	c, err := cartridge.NewFreezer("test.bin", rom)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectFailure(t, c.NMIPending())

	c.FreezeButton()
	ctest.ExpectSuccess(t, c.NMIPending())
	game, exrom := c.GameExrom()
	ctest.ExpectFailure(t, game)
	ctest.ExpectSuccess(t, exrom)
	v, err := c.ReadHi(0x1000)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0xEA), v)

	c.NotifyNMI()
	ctest.ExpectFailure(t, c.NMIPending())
	game, exrom = c.GameExrom()
	ctest.ExpectSuccess(t, game)
	ctest.ExpectFailure(t, exrom)
}

func TestFreezerBankSelectAndDisable(t *testing.T) {
	rom := make([]byte, 4*8192)
	rom[8192] = 0x5A
	c, err := cartridge.NewFreezer("test.bin", rom)
	ctest.ExpectSuccess(t, err)
	c.FreezeButton()

	ctest.ExpectSuccess(t, c.WriteIO1(0, 0x01))
	ctest.ExpectEquality(t, 1, c.CurrentBank())
	v, err := c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x5A), v)

	ctest.ExpectSuccess(t, c.WriteIO1(0, 0x08)) // disable bit set
	v, err = c.ReadLo(0)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint8(0x00), v) // RAM, not ROM, now visible
}

func TestFreezerRejectsWrongSize(t *testing.T) {
	_, err := cartridge.NewFreezer("bad.bin", make([]byte, 123))
	ctest.ExpectFailure(t, err)
}
