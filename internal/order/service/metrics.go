package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ordersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bloomcart_orders_total",
		Help: "Total number of order state changes by resulting status.",
	},
	[]string{"status"},
)
