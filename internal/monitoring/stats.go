package monitoring

import (
	"sync"
	"time"

	"github.com/mgavilanes/campline-be/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const highCPUThreshold = 90.0

// HostStats is one sample of host resource usage, pushed to admin
// dashboard clients and served on demand.
type HostStats struct {
	CPUPercent  float64   `json:"cpuPercent"`
	MemPercent  float64   `json:"memPercent"`
	DiskPercent float64   `json:"diskPercent"`
	SampledAt   time.Time `json:"sampledAt"`
}

// StatsUpdater periodically samples host resource usage and
// broadcasts it over the websocket hub.
type StatsUpdater struct {
	hub    *websocket.Hub
	ticker *time.Ticker
	done   chan bool

	mu     sync.Mutex
	latest HostStats

	lastHighCPUWarn time.Time
}

// NewStatsUpdater creates a new StatsUpdater.
func NewStatsUpdater(hub *websocket.Hub) *StatsUpdater {
	return &StatsUpdater{
		hub:  hub,
		done: make(chan bool),
	}
}

// Run starts the periodic sampling loop.
func (su *StatsUpdater) Run() {
	log.Info().Msg("Starting host stats updater...")
	su.ticker = time.NewTicker(15 * time.Second)
	defer su.ticker.Stop()

	su.sample()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping host stats updater.")
			return
		case <-su.ticker.C:
			su.sample()
		}
	}
}

// Stop halts the periodic sampling.
func (su *StatsUpdater) Stop() {
	su.done <- true
}

// Latest returns the most recent sample.
func (su *StatsUpdater) Latest() HostStats {
	su.mu.Lock()
	defer su.mu.Unlock()
	return su.latest
}

func (su *StatsUpdater) sample() {
	stats := HostStats{SampledAt: time.Now()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("StatsUpdater: failed to sample CPU")
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemPercent = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("StatsUpdater: failed to sample memory")
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	} else {
		log.Warn().Err(err).Msg("StatsUpdater: failed to sample disk")
	}

	su.mu.Lock()
	su.latest = stats
	su.mu.Unlock()

	// Warn on sustained high CPU, at most once per ten minutes.
	if stats.CPUPercent > highCPUThreshold && time.Since(su.lastHighCPUWarn) > 10*time.Minute {
		su.lastHighCPUWarn = time.Now()
		log.Warn().Float64("cpu_percent", stats.CPUPercent).Msg("Host CPU usage is high")
	}

	if msg, err := websocket.NewStatsMessage(stats); err == nil {
		su.hub.Broadcast <- msg
	}
}
