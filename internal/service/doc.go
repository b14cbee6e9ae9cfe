// Package service holds business logic between HTTP handlers and
// repositories. Services validate input, translate storage sentinels into
// service errors, and attach pagination metadata to list results.
package service
