package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PedidoMetrics groups the order/payment counters exposed on /metrics.
type PedidoMetrics struct {
	pedidosCriados      prometheus.Counter
	pagamentosAprovados prometheus.Counter
	pagamentosRecusados prometheus.Counter

	mensagensConsumidas prometheus.Counter
	mensagensComFalha   prometheus.Counter

	pagamentoDuration prometheus.Histogram
}

// NewPedidoMetrics registers the metrics on the default registerer.
func NewPedidoMetrics() *PedidoMetrics {
	return newPedidoMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPedidoMetricsWithRegisterer(registerer prometheus.Registerer) *PedidoMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PedidoMetrics{
		pedidosCriados: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lanchonete_pedidos_criados_total",
			Help: "Total number of orders created",
		}),
		pagamentosAprovados: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lanchonete_pagamentos_aprovados_total",
			Help: "Total number of approved payment notifications applied",
		}),
		pagamentosRecusados: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lanchonete_pagamentos_recusados_total",
			Help: "Total number of declined payment notifications applied",
		}),
		mensagensConsumidas: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lanchonete_pagamento_mensagens_total",
			Help: "Total number of payment messages consumed from the broker",
		}),
		mensagensComFalha: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lanchonete_pagamento_mensagens_falha_total",
			Help: "Total number of payment messages that failed decoding or dispatch",
		}),
		pagamentoDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "lanchonete_pagamento_update_duration_seconds",
			Help:    "Duration of payment-confirmation updates in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordPedidoCriado counts a successfully created order.
func (m *PedidoMetrics) RecordPedidoCriado() {
	if m != nil {
		m.pedidosCriados.Inc()
	}
}

// RecordPagamentoAprovado counts an applied approval.
func (m *PedidoMetrics) RecordPagamentoAprovado() {
	if m != nil {
		m.pagamentosAprovados.Inc()
	}
}

// RecordPagamentoRecusado counts an applied decline.
func (m *PedidoMetrics) RecordPagamentoRecusado() {
	if m != nil {
		m.pagamentosRecusados.Inc()
	}
}

// RecordMensagemConsumida counts a message taken from the queue.
func (m *PedidoMetrics) RecordMensagemConsumida() {
	if m != nil {
		m.mensagensConsumidas.Inc()
	}
}

// RecordMensagemComFalha counts a message that could not be applied.
func (m *PedidoMetrics) RecordMensagemComFalha() {
	if m != nil {
		m.mensagensComFalha.Inc()
	}
}

// RecordPagamentoDuration observes one payment-update latency.
func (m *PedidoMetrics) RecordPagamentoDuration(d time.Duration) {
	if m != nil {
		m.pagamentoDuration.Observe(d.Seconds())
	}
}

// registerCounter tolerates duplicate registration so multiple components can
// construct the metrics set independently.
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(prometheus.Counter); ok2 {
				return existing
			}
		}
	}
	return c
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := registerer.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(prometheus.Histogram); ok2 {
				return existing
			}
		}
	}
	return h
}
