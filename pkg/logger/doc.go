// Package logger provides a structured logging interface for the harvester.
//
// It wraps the zerolog library to provide a clean API with support for
// multiple log levels, structured fields, pretty console output, optional
// file output and a global instance for easy access.
//
// Basic usage:
//
//	cfg := &config.LoggingConfig{Level: "info"}
//	err := logger.Initialize(cfg)
//
//	logger.Info("harvest starting")
//	logger.WithField("cursor", 100).Info("fetching page")
//	logger.WithError(err).Error("flush failed")
package logger
