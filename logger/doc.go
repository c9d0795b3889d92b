/*
Package logger provides logging functionality by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2024/04/28 15:55:21 [ERROR] vouch/http/resp/responder.go:43 'boom' log_context: {"error":"boom","request":{"method":"POST","url":"/users"}}

The log context is a JSON-encoded [LogContext].
It allows for including additional data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.

# SentryLogger

When configured with [WithSentryDSN], [New] returns a [SentryLogger],
which additionally reports the error in a [LogContext] to Sentry.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
