package recordio

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	recordsReadCounter      otelmetric.Int64Counter
	recordsWrittenCounter   otelmetric.Int64Counter
	recordsMalformedCounter otelmetric.Int64Counter
)

func init() {
	meter := otel.Meter("record-mapper/internal/recordio")

	var err error

	recordsReadCounter, err = meter.Int64Counter(
		"recordmapper.tokenizer.records.read",
		otelmetric.WithDescription("Number of records read by tokenizers"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create records.read counter: %w", err))
	}

	recordsWrittenCounter, err = meter.Int64Counter(
		"recordmapper.tokenizer.records.written",
		otelmetric.WithDescription("Number of records written by tokenizers"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create records.written counter: %w", err))
	}

	recordsMalformedCounter, err = meter.Int64Counter(
		"recordmapper.tokenizer.records.malformed",
		otelmetric.WithDescription("Number of records rejected by tokenizers as malformed"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create records.malformed counter: %w", err))
	}
}

// CountRead records one successfully tokenized record.
func CountRead(f Format) {
	recordsReadCounter.Add(context.Background(), 1, otelmetric.WithAttributes(
		attribute.String("format", f.String()),
	))
}

// CountWritten records one record written.
func CountWritten(f Format) {
	recordsWrittenCounter.Add(context.Background(), 1, otelmetric.WithAttributes(
		attribute.String("format", f.String()),
	))
}

// CountMalformed records one record rejected as malformed.
func CountMalformed(f Format) {
	recordsMalformedCounter.Add(context.Background(), 1, otelmetric.WithAttributes(
		attribute.String("format", f.String()),
	))
}
