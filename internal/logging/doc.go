// Package logging assembles structured slog loggers for tracklink.
//
// New builds a console or JSON handler at the configured level. NewFromConfig
// additionally tees every record at debug level into a JSON log file under the
// configured log directory, so a quiet console run still leaves a full trace.
// Run ids travel on the context and are attached by WithContext.
//
// Warnings should go through WarnWithContext so every one carries an
// event_type, an error_hint, and an impact.
package logging
