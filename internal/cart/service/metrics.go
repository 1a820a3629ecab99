package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloomcart_cart_mutations_total",
			Help: "Total number of committed cart mutations by operation.",
		},
		[]string{"operation"},
	)

	stockRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloomcart_cart_stock_rejections_total",
			Help: "Total number of cart mutations rejected by the stock gate.",
		},
	)
)
