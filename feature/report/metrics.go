package report

import (
	"fmt"
	"io"

	"account-db-compare/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WriteMetrics writes the run totals to w in the Prometheus text format,
// suitable for the node exporter textfile collector.
func WriteMetrics(w io.Writer, run *reconcile.Run) error {
	registry := prometheus.NewRegistry()

	totals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "account_compare",
		Name:      "results",
		Help:      "Comparison results of the last run by outcome.",
	}, []string{"outcome"})
	nodeTotals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "account_compare",
		Name:      "node_results",
		Help:      "Comparison results of the last run by node and outcome.",
	}, []string{"node", "outcome"})
	matchRate := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "account_compare",
		Name:      "node_match_ratio",
		Help:      "Matched over compared accounts of the last run by node.",
	}, []string{"node"})
	archived := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "account_compare",
		Name:      "archiver_accounts",
		Help:      "Accounts indexed from the archiver in the last run.",
	})
	failed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "account_compare",
		Name:      "failed_nodes",
		Help:      "Node stores that could not be compared in the last run.",
	})

	registry.MustRegister(totals, nodeTotals, matchRate, archived, failed)

	agg := run.Stats
	setOutcomes(totals, agg.Global)
	for _, name := range agg.NodeNames() {
		s := agg.Nodes[name]
		setOutcomes(nodeTotals.MustCurryWith(prometheus.Labels{"node": name}), *s)
		matchRate.WithLabelValues(name).Set(s.MatchRate())
	}
	archived.Set(float64(run.Archived))
	failed.Set(float64(len(agg.Failed)))

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func setOutcomes(vec *prometheus.GaugeVec, s reconcile.Stats) {
	vec.WithLabelValues("compared").Set(float64(s.Compared))
	vec.WithLabelValues("matched").Set(float64(s.Matched()))
	vec.WithLabelValues("mismatched").Set(float64(s.Mismatched))
	vec.WithLabelValues("balance_mismatch").Set(float64(s.BalanceMismatches))
	vec.WithLabelValues("nonce_mismatch").Set(float64(s.NonceMismatches))
	vec.WithLabelValues("kind_mismatch").Set(float64(s.KindMismatches))
	vec.WithLabelValues("missing_in_node").Set(float64(s.MissingInNode))
	vec.WithLabelValues("missing_in_archiver").Set(float64(s.MissingInArchiver))
	vec.WithLabelValues("unparsable").Set(float64(s.Unparsable))
}
