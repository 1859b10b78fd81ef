package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the pushgateway job name for one-shot imports
const PushJob = "thebench_importer"

// Push sends the default registry to a Prometheus pushgateway.
// One-shot CLI runs exit before a scrape could happen, so they push instead.
func Push(ctx context.Context, gatewayURL, instance string) error {
	pusher := push.New(gatewayURL, PushJob).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", instance)

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}

	return nil
}
