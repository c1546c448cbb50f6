package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	obserrors "github.com/net4grad/alumni-web/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

const namespace = "alumni_web"

// Recorder exposes portal metrics through Prometheus. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	logins   *prometheus.CounterVec
	loads    *prometheus.CounterVec
	upstream *prometheus.HistogramVec
}

// NewRecorder registers the portal collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by requested role, resolved role source and result.",
		}, []string{"role", "role_source", "result", "error_class"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_loads_total",
			Help:      "Dashboard view loads by view and terminal status.",
		}, []string{"view", "status"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the upstream API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "code"}),
	}
	if reg != nil {
		reg.MustRegister(r.logins, r.loads, r.upstream)
	}
	return r
}

// LoginMetric captures the outcome of one login attempt.
type LoginMetric struct {
	Role       string
	RoleSource string
	Err        error
}

// Login records a login attempt.
func (r *Recorder) Login(in LoginMetric) {
	if r == nil {
		return
	}
	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	r.logins.WithLabelValues(in.Role, in.RoleSource, result, obserrors.Classify(in.Err)).Inc()
}

// ViewLoad records the terminal status of a dashboard view load.
func (r *Recorder) ViewLoad(view, status string) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(view, status).Inc()
}

// UpstreamMetric captures one upstream round trip. StatusCode is zero when
// no response was received.
type UpstreamMetric struct {
	Operation  string
	StatusCode int
	Duration   time.Duration
}

// Upstream records an upstream call.
func (r *Recorder) Upstream(in UpstreamMetric) {
	if r == nil {
		return
	}
	code := "none"
	if in.StatusCode > 0 {
		code = strconv.Itoa(in.StatusCode)
	}
	r.upstream.WithLabelValues(in.Operation, code).Observe(in.Duration.Seconds())
}
