// Package services contains the request-scoped orchestration between the
// file locator, the dataset loaders, and the aggregation pipeline. Services
// are stateless: each call resolves and reads the CSV exports fresh, so
// concurrent requests for different projects share nothing.
package services
