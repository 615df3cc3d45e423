// Package config loads the service's runtime settings from environment
// variables.
//
// Recognised variables, with their defaults:
//
//	APP_ENV / FLASK_ENV  development
//	PORT                 8000
//	DATABASE_URL         postgresql://postgres:postgres@db:5432/microloans
//	LOG_LEVEL            INFO
//	LOG_FORMAT           text ("text" or "json")
//
// Empty variables are treated as unset.
package config
