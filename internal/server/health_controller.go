package server

import (
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"
)

// HealthController reports process liveness and database reachability.
type HealthController struct {
	db        *gorm.DB
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Database      string  `json:"database"`
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db, startTime: time.Now()}
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Database:      "ok",
	}

	status := http.StatusOK
	if err := hc.pingDB(r); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func (hc *HealthController) pingDB(r *http.Request) error {
	if hc.db == nil {
		return fmt.Errorf("no database configured")
	}
	sqlDB, err := hc.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(r.Context())
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
