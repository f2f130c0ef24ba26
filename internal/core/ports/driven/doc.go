// Package driven defines the outbound interfaces the core services depend
// on: data source connectors and persistence. Implementations live under
// internal/connectors and internal/adapters/driven.
package driven
