package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const exporterSetupTimeout = 10 * time.Second

// InitTracer installs the global tracer provider and W3C propagators.
// Spans are batched to the OTLP collector at otlpEndpoint; when the
// endpoint is empty or unusable they are sampled and then dropped.
func InitTracer(serviceName, otlpEndpoint string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	l := appLogger.Named("Tracer")
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(serviceResource(serviceName)),
	}
	exporting := false
	if otlpEndpoint != "" {
		exporter, err := newExporter(otlpEndpoint)
		if err != nil {
			l.Error("OTLP exporter unavailable, spans will not leave the process",
				zap.String("endpoint", otlpEndpoint), zap.Error(err))
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter))
			exporting = true
		}
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	l.Info("Tracer provider installed",
		zap.String("service_name", serviceName),
		zap.String("otlp_endpoint", otlpEndpoint),
		zap.Bool("exporting", exporting),
	)
	return tp
}

func serviceResource(serviceName string) *resource.Resource {
	return resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName))
}

// newExporter builds an OTLP/gRPC exporter over a plaintext connection.
func newExporter(endpoint string) (sdktrace.SpanExporter, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("otlp grpc client for %s: %w", endpoint, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), exporterSetupTimeout)
	defer cancel()
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	return exporter, nil
}
