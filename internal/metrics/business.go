package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("dishcovery/business")

	// Recipe metrics
	RecipeGenerationsTotal metric.Int64Counter
	AIGenerationDuration   metric.Float64Histogram

	// Parser metrics
	ParseFallbacksTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// Key validation metrics
	KeyValidationsTotal metric.Int64Counter
)

func Init() error {
	var err error

	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of AI recipe generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ParseFallbacksTotal, err = meter.Int64Counter(
		"recipe.parse.fallbacks.total",
		metric.WithDescription("Total number of model responses that fell back to raw text"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	KeyValidationsTotal, err = meter.Int64Counter(
		"provider.key.validations.total",
		metric.WithDescription("Total number of provider API key validation requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
