// Package telemetry provides OpenTelemetry initialization and helpers
// for distributed tracing across the Dishcovery API.
//
// The package configures OTLP HTTP export for traces and logs.
package telemetry
