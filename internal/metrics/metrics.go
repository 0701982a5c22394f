package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LeadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_leads_total",
			Help: "Lead lifecycle counter by stage and category",
		},
		[]string{"stage", "category"}, // rejected|persisted|notified|notify_failed , booking|order|sell|commission
	)

	ReviewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_reviews_total",
			Help: "Submitted customer reviews",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		LeadsTotal,
		ReviewsTotal,
	)
}
