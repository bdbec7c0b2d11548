package metrics

import "github.com/prometheus/client_golang/prometheus"

// PointsMetrics holds Prometheus metrics for the points ledger:
// redemptions, weekly awards, and logged activities.
type PointsMetrics struct {
	RedemptionsTotal    *prometheus.CounterVec
	WeeklyPointsAwarded prometheus.Counter
	ActivitiesLogged    prometheus.Counter
	EmissionLoggedKg    prometheus.Counter
}

// NewPointsMetrics creates and registers points pipeline metrics on the given registry.
func NewPointsMetrics(reg prometheus.Registerer) *PointsMetrics {
	m := &PointsMetrics{
		RedemptionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redemptions_total",
			Help:      "Total number of redemption attempts, by result.",
		}, []string{"result"}),
		WeeklyPointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weekly_points_awarded_total",
			Help:      "Total bonus points credited by the weekly scorer.",
		}),
		ActivitiesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_logged_total",
			Help:      "Total number of activities logged.",
		}),
		EmissionLoggedKg: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emission_logged_kg_total",
			Help:      "Total logged emissions in kg CO2.",
		}),
	}

	reg.MustRegister(m.RedemptionsTotal, m.WeeklyPointsAwarded, m.ActivitiesLogged, m.EmissionLoggedKg)
	return m
}

// Redemption result labels.
const (
	RedemptionResultSuccess            = "success"
	RedemptionResultNotFound           = "not_found"
	RedemptionResultOutOfStock         = "out_of_stock"
	RedemptionResultInsufficientPoints = "insufficient_points"
	RedemptionResultError              = "error"
)
