package ops

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloggin "github.com/samber/slog-gin"

	"github.com/aibekm/codeassist-bot/internal/health"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
)

// NewServer builds the internal ops HTTP server: health probes,
// Prometheus metrics and a read-only view of the scheduler's pending
// jobs. It is not exposed to end users.
func NewServer(addr string, logger *slog.Logger, checker *health.Checker, sched *scheduler.Scheduler) *http.Server {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(sloggin.New(logger))
	r.Use(Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Liveness(c.Request.Context()))
	})

	r.GET("/readyz", func(c *gin.Context) {
		result := checker.Readiness(c.Request.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, result)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/debug/jobs", func(c *gin.Context) {
		type jobView struct {
			Key    string `json:"key"`
			Kind   string `json:"kind"`
			RunAt  string `json:"run_at"`
			Target int64  `json:"target"`
		}
		jobs := sched.Snapshot()
		views := make([]jobView, 0, len(jobs))
		for _, j := range jobs {
			views = append(views, jobView{
				Key:    j.Key.String(),
				Kind:   string(j.Kind),
				RunAt:  j.RunAt.UTC().Format(http.TimeFormat),
				Target: j.Target,
			})
		}
		c.JSON(http.StatusOK, gin.H{"jobs": views})
	})

	return &http.Server{Addr: addr, Handler: r}
}
