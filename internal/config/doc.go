/*
Package config reads the settings of a vouch service from its environment.

Values come from environment variables, optionally seeded by a ".env" file:

	ENVIRONMENT          DEVELOPMENT, PRODUCTION, STAGING or TESTING; default DEVELOPMENT
	HOST                 default localhost
	PORT                 default 3000
	LOG_LEVEL            DEBUG, INFO, WARN, ERROR or FATAL; default INFO
	SENTRY_DSN           reports errors to Sentry when set
	MAX_BODY_BYTES       largest request body accepted; default 2 MiB
	CORS_ORIGIN          allows cross-origin requests from this origin when set
	SERVER_READ_TIMEOUT  a duration, e.g., "5s"; default 5s
*/
package config
