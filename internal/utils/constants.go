package utils

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal message emitted when the CLI returns an error.
const ApplicationExecutionFailedMessage = "viopi execution failed"
