package future_test

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/future"
	"github.com/sixtyfour/core64/internal/ctest"
)

func TestFuture_schedulingDelays(t *testing.T) {
	tck := future.NewTicker("test")

	var ev *future.Event

	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())

	ev = tck.Schedule(-1, func() {}, "test event")
	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())

	ev = tck.Schedule(0, func() {}, "test event")
	ctest.ExpectSuccess(t, ev.JustStarted())
	ctest.ExpectSuccess(t, ev.AboutToEnd())
	ctest.ExpectSuccess(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())

	ev = tck.Schedule(1, func() {}, "test event")
	ctest.ExpectSuccess(t, ev.JustStarted())
	ctest.ExpectFailure(t, ev.AboutToEnd())
	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectSuccess(t, ev.AboutToEnd())
	ctest.ExpectSuccess(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectFailure(t, tck.Tick())

	sentinal := false

	ev = tck.Schedule(2, func() { sentinal = true }, "test event")
	ctest.ExpectSuccess(t, ev.JustStarted())
	ctest.ExpectFailure(t, ev.AboutToEnd())
	ctest.ExpectFailure(t, tck.Tick())
	ctest.Equate(t, ev.RemainingCycles(), 1)
	ctest.ExpectFailure(t, tck.Tick())
	ctest.ExpectSuccess(t, ev.AboutToEnd())
	ctest.ExpectSuccess(t, tck.Tick())

	ctest.ExpectSuccess(t, sentinal)

	ctest.ExpectFailure(t, tck.Tick())
}

func TestFuture_force(t *testing.T) {
	tck := future.NewTicker("test")

	sentinal := false

	ev := tck.Schedule(2, func() { sentinal = true }, "test event")
	ctest.ExpectSuccess(t, ev.JustStarted())
	ctest.ExpectFailure(t, ev.AboutToEnd())
	ctest.Equate(t, ev.RemainingCycles(), 2)
	ev.Force()
	ctest.Equate(t, ev.RemainingCycles(), -1)
	ctest.ExpectSuccess(t, sentinal)
	ctest.ExpectFailure(t, tck.Tick())
}

func TestFuture_drop(t *testing.T) {
	tck := future.NewTicker("test")

	sentinal := false

	ev := tck.Schedule(2, func() { sentinal = true }, "test event")
	ctest.ExpectSuccess(t, ev.JustStarted())
	ctest.ExpectFailure(t, ev.AboutToEnd())
	ctest.Equate(t, ev.RemainingCycles(), 2)
	ev.Drop()
	ctest.Equate(t, ev.RemainingCycles(), -1)
	ctest.ExpectFailure(t, sentinal)
	ctest.ExpectFailure(t, tck.Tick())
}

func TestFuture_drop2(t *testing.T) {
	tck := future.NewTicker("test")

	tck.Schedule(5, func() {}, "test event")
	ev := tck.Schedule(3, func() {}, "test event")
	ctest.ExpectFailure(t, tck.Tick())
	ctest.Equate(t, tck.String(), "test: test event -> 4\ntest: test event -> 2")
	ev.Drop()
	ctest.Equate(t, tck.String(), "test: test event -> 4")
}
