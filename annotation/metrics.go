// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "gviegas/annotation/annotation"

// metrics holds the counters shared by every component.
// They are no-ops unless a global meter provider is set.
type metrics struct {
	created metric.Int64Counter
	skipped metric.Int64Counter
	updates metric.Int64Counter
}

func newMetrics(m metric.Meter) *metrics {
	var met metrics
	var err error
	if met.created, err = m.Int64Counter(
		"annotation.proxy.created",
		metric.WithDescription("Annotation draw proxies built"),
	); err != nil {
		met.created = noop.Int64Counter{}
	}
	if met.skipped, err = m.Int64Counter(
		"annotation.proxy.skipped",
		metric.WithDescription("Annotation draw proxy requests that produced no proxy"),
	); err != nil {
		met.skipped = noop.Int64Counter{}
	}
	if met.updates, err = m.Int64Counter(
		"annotation.color.updates",
		metric.WithDescription("Annotation color parameter updates"),
	); err != nil {
		met.updates = noop.Int64Counter{}
	}
	return &met
}

func defaultMetrics() *metrics { return newMetrics(otel.Meter(instrumentationName)) }

func (m *metrics) proxyCreated(kind string) {
	m.created.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *metrics) proxySkipped(reason string) {
	m.skipped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *metrics) colorUpdated() { m.updates.Add(context.Background(), 1) }
