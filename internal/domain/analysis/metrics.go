package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobmarket",
		Name:      "reports_total",
		Help:      "Reporter and aggregator calls by outcome",
	}, []string{"report", "result"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jobmarket",
		Name:      "report_duration_seconds",
		Help:      "Reporter and aggregator latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"report"})

	trendsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobmarket",
		Name:      "skill_trends_upserted_total",
		Help:      "SkillTrend rows written by aggregator runs",
	})
)
