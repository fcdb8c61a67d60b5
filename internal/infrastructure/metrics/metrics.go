// Package metrics métricas Prometheus del servicio, en un registry propio expuesto en /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "veon"

// Metrics agrupa los colectores del servicio.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	salesRecorded   prometheus.Counter
}

// New registra los colectores HTTP, de ventas y los del runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP atendidos.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de los requests HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Ventas confirmadas (batch aplicado).",
		}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.salesRecorded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest registra un request ya respondido. route es el patrón (/api/products/:id), no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registry (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// CountSales envuelve un notificador y cuenta cada venta confirmada antes de delegar.
func (m *Metrics) CountSales(next sales.ClientSalesNotifier) sales.ClientSalesNotifier {
	if next == nil {
		next = sales.NopNotifier{}
	}
	return &countingNotifier{next: next, counter: m.salesRecorded}
}

type countingNotifier struct {
	next    sales.ClientSalesNotifier
	counter prometheus.Counter
}

func (n *countingNotifier) SaleRecorded(ctx context.Context, userID, clientID string) {
	n.counter.Inc()
	n.next.SaleRecorded(ctx, userID, clientID)
}
