// Package analytics implements the Firebase Analytics CSV ingestion and
// aggregation pipeline.
//
// The pipeline has three stages. ParseSection extracts one comment-delimited
// table from a multi-section export into column-keyed string rows. The
// Loader converts located files into typed record sets (daily active users,
// events, screen views), coercing numeric fields leniently. AggregateFeatures
// and TopFeatures then merge event and screen records into the unified
// feature-usage views, and BuildSummary assembles everything into the
// DashboardSummary handed to rendering and export layers.
//
// All functions here are pure with respect to shared state: each summary is
// rebuilt fresh from the files, and concurrent requests share nothing.
package analytics
