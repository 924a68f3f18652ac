package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rps_ticks_total",
		Help: "Total simulated ticks",
	})

	// plansTotal counts planning calls by result: chosen, idle or error
	plansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rps_plans_total",
		Help: "Total planning calls by result",
	}, []string{"result"})

	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rps_plan_duration_seconds",
		Help:    "Planning duration per agent and tick",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})

	conversionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rps_conversions_total",
		Help: "Total conversions applied to the world",
	})

	agentsByType = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rps_agents",
		Help: "Agents per type after the last tick",
	}, []string{"type"})
)
