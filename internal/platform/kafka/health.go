package kafka

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// HealthChecker checks Kafka broker reachability over TCP, independent of
// any client instance.
type HealthChecker struct {
	brokers string
	timeout time.Duration
}

// NewHealthChecker creates a new Kafka health checker.
func NewHealthChecker(brokers string) *HealthChecker {
	return &HealthChecker{
		brokers: brokers,
		timeout: 3 * time.Second,
	}
}

// Check returns nil if at least one broker accepts a TCP connection.
func (h *HealthChecker) Check(ctx context.Context) error {
	var lastErr error
	for _, broker := range strings.Split(h.brokers, ",") {
		broker = strings.TrimSpace(broker)
		if broker == "" {
			continue
		}
		dialer := net.Dialer{Timeout: h.timeout}
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close()
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("no kafka brokers reachable: %w", lastErr)
	}
	return fmt.Errorf("kafka brokers not configured")
}

// Name returns the check name for health reporting.
func (h *HealthChecker) Name() string {
	return "kafka"
}
