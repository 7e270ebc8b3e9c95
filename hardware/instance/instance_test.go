package instance_test

import (
	"testing"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware/instance"
	"github.com/sixtyfour/core64/internal/ctest"
)

func TestNewInstance(t *testing.T) {
	ins, err := instance.NewInstance(config.Default())
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, uint64(0), ins.Coords.Cycle())

	ins.Coords.Tick()
	ins.Coords.Tick()
	ctest.ExpectEquality(t, uint64(2), ins.Coords.Cycle())
}

func TestNewInstanceRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Drives[0].Type = config.Drive1571
	_, err := instance.NewInstance(cfg)
	ctest.ExpectFailure(t, err == nil)
}

func TestNormaliseForcesZeroSeed(t *testing.T) {
	ins, err := instance.NewInstance(config.Default())
	ctest.ExpectSuccess(t, err)
	ins.Normalise()
	ctest.ExpectSuccess(t, ins.Random.ZeroSeed)
}
