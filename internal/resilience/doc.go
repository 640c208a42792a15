// Package resilience groups fault-tolerance helpers for outbound calls.
//
// The circuitbreaker subpackage guards the SQL handle used by the article
// store so that a failing database is reported quickly instead of stacking
// up blocked requests. Failures are never retried; callers see them as
// persistence errors.
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	repo := postgres.NewArticleRepo(guarded)
package resilience
