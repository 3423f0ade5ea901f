// Package http contains the chi HTTP handlers for the dashboard API. The
// handlers are thin transport glue: parameter validation, content
// negotiation, and error mapping around the service layer, with no
// aggregation logic of their own.
package http
