// Package dmadebug records live cycle-accounting instrumentation while a
// Computer's config.Machine.DMADebug flag is set: cumulative system cycles,
// VIC-II bad-line steal cycles, sprite-DMA steal cycles and raised-IRQ
// count are written to the logger at each interval, while statsview serves
// its usual goroutine/heap view for the Go process over HTTP.
package dmadebug

import (
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/sixtyfour/core64/hardware"
	"github.com/sixtyfour/core64/logger"
)

// Monitor periodically samples a Computer's cycle-accounting counters and
// logs them, while a statsview server gives a live view of the process
// alongside them at the same address.
type Monitor struct {
	computer *hardware.Computer
	manager  *statsview.Manager
	stop     chan struct{}
}

// New wraps c. Nothing is sampled or served until Start is called.
func New(c *hardware.Computer) *Monitor {
	return &Monitor{computer: c}
}

// Start launches the statsview HTTP server at addr (e.g. "localhost:18066")
// and begins logging this core's own counters every interval, until Stop is
// called.
func (m *Monitor) Start(addr string, interval time.Duration) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	m.manager = statsview.New()
	go m.manager.Start()

	m.stop = make(chan struct{})
	go m.sampleLoop(interval)
}

// Stop shuts down the statsview server and the sampling goroutine.
func (m *Monitor) Stop() {
	if m.manager != nil {
		m.manager.Stop()
	}
	if m.stop != nil {
		close(m.stop)
	}
}

func (m *Monitor) sampleLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.logCounters()
		}
	}
}

func (m *Monitor) logCounters() {
	logger.Logf("dmadebug", "cycles=%d badline=%d spriteDMA=%d irq=%d",
		m.computer.Instance.Coords.Cycle(),
		m.computer.VIC.BadLineCycles(),
		m.computer.VIC.SpriteDMACycles(),
		m.computer.VIC.IRQCount(),
	)
}
