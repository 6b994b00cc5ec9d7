package royalty

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts engine operations for observability. A nil *Metrics is a
// valid no-op receiver, so instrumentation is optional.
type Metrics struct {
	TransfersDistributed    prometheus.Counter
	TransfersNoDistribution prometheus.Counter
	SharesCredited          prometheus.Counter
	Withdrawals             prometheus.Counter
	AssetsMinted            prometheus.Counter
	AssetsBurned            prometheus.Counter
}

// NewMetrics registers the engine counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TransfersDistributed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_transfers_distributed_total",
			Help: "Total number of transfers that distributed profit shares",
		}),
		TransfersNoDistribution: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_transfers_no_distribution_total",
			Help: "Total number of transfers completed without a distribution",
		}),
		SharesCredited: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_shares_credited_total",
			Help: "Total number of ledger entries credited by distributions",
		}),
		Withdrawals: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_withdrawals_total",
			Help: "Total number of successful payout withdrawals",
		}),
		AssetsMinted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_assets_minted_total",
			Help: "Total number of assets minted with royalty state",
		}),
		AssetsBurned: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "royalty_assets_burned_total",
			Help: "Total number of assets burned",
		}),
	}
}

func (m *Metrics) incDistributed() {
	if m != nil {
		m.TransfersDistributed.Inc()
	}
}

func (m *Metrics) incNoDistribution() {
	if m != nil {
		m.TransfersNoDistribution.Inc()
	}
}

func (m *Metrics) addSharesCredited(n int) {
	if m != nil {
		m.SharesCredited.Add(float64(n))
	}
}

func (m *Metrics) incWithdrawals() {
	if m != nil {
		m.Withdrawals.Inc()
	}
}

func (m *Metrics) incMinted() {
	if m != nil {
		m.AssetsMinted.Inc()
	}
}

func (m *Metrics) incBurned() {
	if m != nil {
		m.AssetsBurned.Inc()
	}
}
