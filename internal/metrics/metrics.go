package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "komodohub"

var (
	RewardsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rewards_issued_total",
		Help:      "Ledger credits written, by reason.",
	}, []string{"reason"})

	RewardsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rewards_skipped_total",
		Help:      "Reward attempts that hit an idempotency guard, by reason.",
	}, []string{"reason"})

	PointsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_issued_total",
		Help:      "Points credited to users, by reason.",
	}, []string{"reason"})

	Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redemptions_total",
		Help:      "Shop redemption attempts, by result.",
	}, []string{"result"})

	ReviewTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_transitions_total",
		Help:      "Applied report review actions, by action.",
	}, []string{"action"})

	TaxonomyLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "taxonomy_lookups_total",
		Help:      "Taxonomy lookups, by result (hit, miss, rejected, error).",
	}, []string{"result"})
)
