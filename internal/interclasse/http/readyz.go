package http

import (
	"context"
	"net/http"
	"time"

	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
)

// Pinger is satisfied by every store.KV driver.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness endpoint returning service health status and checks for the record and session stores
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	interclassesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	interclassesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, records, sessions Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &interclassesdk.HealthChecks{
			Records:  "ok",
			Sessions: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := records.Ping(r.Context()); err != nil {
			checks.Records = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
		if err := sessions.Ping(r.Context()); err != nil {
			checks.Sessions = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, interclassesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
