package server

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
)

// HealthSnapshot is the GET /health payload. There is no database or session
// store to probe, so health is the process itself plus host headroom.
type HealthSnapshot struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`

	MemoryUsedPercent float64 `json:"memory_used_percent,omitempty"`
	Load1             float64 `json:"load_1,omitempty"`
	HostUptimeSeconds uint64  `json:"host_uptime_seconds,omitempty"`
}

// healthHandler gathers host stats concurrently; any single probe failing is
// logged and its field left at zero rather than failing the check.
func (s *Server) healthHandler(c echo.Context) error {
	ctx := c.Request().Context()

	snap := HealthSnapshot{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
	}

	g, grpCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		vm, err := mem.VirtualMemoryWithContext(grpCtx)
		if err == nil {
			mu.Lock()
			snap.MemoryUsedPercent = vm.UsedPercent
			mu.Unlock()
		} else {
			log.Warn().Err(err).Msg("Failed to read memory stats")
		}
		return nil
	})

	g.Go(func() error {
		avg, err := load.AvgWithContext(grpCtx)
		if err == nil {
			mu.Lock()
			snap.Load1 = avg.Load1
			mu.Unlock()
		} else {
			log.Warn().Err(err).Msg("Failed to read load average")
		}
		return nil
	})

	g.Go(func() error {
		uptime, err := host.UptimeWithContext(grpCtx)
		if err == nil {
			mu.Lock()
			snap.HostUptimeSeconds = uptime
			mu.Unlock()
		} else {
			log.Warn().Err(err).Msg("Failed to read host uptime")
		}
		return nil
	})

	// Probes never return errors, so Wait is just a join point.
	_ = g.Wait()

	return c.JSON(http.StatusOK, snap)
}
