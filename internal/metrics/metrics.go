// Package metrics содержит счетчики Prometheus для жизненного цикла подписок.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics объединяет счетчики, которые инкрементирует движок подписок.
type Metrics struct {
	SubscriptionsCreated   prometheus.Counter
	SubscriptionsCancelled prometheus.Counter
	// SideEffectFailures считает неудачные записи журнала транзакций и
	// уведомлений, которые не откатываются (модель eventual consistency).
	SideEffectFailures *prometheus.CounterVec
	BalanceConflicts   prometheus.Counter
}

// New регистрирует счетчики в переданном registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubscriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fund_subscriptions_created_total",
			Help: "Number of fund subscriptions successfully created.",
		}),
		SubscriptionsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "fund_subscriptions_cancelled_total",
			Help: "Number of fund subscriptions successfully cancelled.",
		}),
		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fund_sideeffect_failures_total",
			Help: "Number of failed ledger or notification writes after a committed balance change.",
		}, []string{"kind"}),
		BalanceConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "fund_balance_conflicts_total",
			Help: "Number of balance compare-and-set retries exhausted.",
		}),
	}
}
