package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckIns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "absensi", Name: "checkins_total", Help: "Accepted check-ins",
	})
	CheckOuts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "absensi", Name: "checkouts_total", Help: "Accepted check-outs",
	})
	GateRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "absensi", Name: "gate_rejections_total", Help: "Rejected attendance attempts",
	}, []string{"reason"})
	ReportErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "absensi", Name: "report_errors_total", Help: "Failed report generations",
	})
	ExportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "absensi", Name: "export_duration_seconds", Help: "Excel export build time",
		Buckets: prometheus.DefBuckets,
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "absensi", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(CheckIns, CheckOuts, GateRejections, ReportErrors, ExportDuration, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
