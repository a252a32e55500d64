package storage

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("wedding-planner/internal/storage")
