package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "generation_seconds",
		Help:    "Время генерации артефакта по видам",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	BroadcastSendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_sends_total",
		Help: "Попытки доставки по получателям",
	}, []string{"status"})

	BroadcastCyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_cycles_total",
		Help: "Завершённые циклы рассылки по исходам",
	}, []string{"outcome"})

	ReconcileRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_runs_total",
		Help: "Запуски сверки получателей по исходам",
	}, []string{"outcome"})

	ActiveRecipients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_recipients",
		Help: "Число получателей, участвующих в рассылке",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		GenerationSeconds,
		BroadcastSendsTotal,
		BroadcastCyclesTotal,
		ReconcileRunsTotal,
		ActiveRecipients,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// ObserveGeneration записывает длительность шага генерации.
func ObserveGeneration(kind string, start time.Time) {
	GenerationSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
