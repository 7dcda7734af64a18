// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package api serves the viewing statistics over HTTP using the Chi router.

# Routes

All routes live under /api/v1 and answer with the models.APIResponse envelope:

	GET    /health, /health/live, /health/ready
	POST   /import                multipart "file" upload, "language" field or query
	GET    /import/status         summary of the last import
	POST   /data/sample           load the embedded sample dataset
	DELETE /data                  delete every stored record
	GET    /data/status           whether a complete dataset is stored
	GET    /users                 stored users, "all" first
	GET    /activities            raw activity log
	GET    /movies, /series       grid rows with last-watched information
	GET    /charts/calendar       calendar heatmap
	GET    /charts/months         month rollup
	GET    /charts/weekdays       weekday rollup
	GET    /charts/years          total time and per-year hours
	GET    /charts/genres         genre distribution, type=movies|tv
	GET    /charts/top-series     top series by time watched

Prometheus metrics are served at /metrics.

# Chart parameters

Chart and list endpoints accept:

	user    profile name, "all" or empty for every profile
	year    restricts calendar and rollups to one year
	locale  en or de; falls back to Accept-Language, then the configured default
	tz      IANA time zone used for day, weekday and year bucketing

# Errors

Failures carry a machine readable code. Import errors map the ingest
sentinels (INVALID_CSV_HEADERS, UNPARSEABLE_DATE and so on) so a client can
tell a wrong file from a broken server. Reads before any import return
NO_DATA with status 404.

# Middleware

Every route gets a request id, panic recovery and CORS (go-chi/cors). API
routes are rate limited with go-chi/httprate; import and sample loading use a
stricter limit. Request counts and latencies are exported to Prometheus.
*/
package api
