// Package config loads, normalizes, and validates assetsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment variables the
// tool has always accepted: GRAPHQL_API_URL, AUTH_TOKEN, DEFAULT_PULL_LIMIT,
// PULL_TIME_SPAN, PUSH_TIME_SPAN and PUBLISH_TIME_SPAN (milliseconds).
// Environment values win over the file.
//
// Always obtain settings through this package so downstream code receives
// absolute mirror paths, sane pacing delays, and clear validation errors.
package config
