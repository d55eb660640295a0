package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	DrawsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsPerformed,
			Help: HelpTextDrawsPerformed,
		},
		[]string{LabelTable},
	)

	ItemsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsDrawn,
			Help: HelpTextItemsDrawn,
		},
		[]string{LabelTable},
	)

	ItemsCrafted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCrafted,
			Help: HelpTextItemsCrafted,
		},
		[]string{LabelItem},
	)

	ItemsEnchanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsEnchanted,
			Help: HelpTextItemsEnchanted,
		},
		[]string{LabelItem},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsConsumed,
			Help: HelpTextItemsConsumed,
		},
		[]string{LabelItem},
	)

	EffectsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEffectsTriggered,
			Help: HelpTextEffectsTriggered,
		},
		[]string{LabelKind},
	)

	MoneyEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
		[]string{LabelSource},
	)

	MoneySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
		[]string{LabelSource},
	)
)
