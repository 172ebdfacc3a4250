// Package handlers provides HTTP request handlers for the Aniscout API.
//
// The API includes endpoints for:
//   - Health checks
//   - Research item listing and statistics
//   - Manual ingestion triggers
//   - RSS source registry management
//   - Ad hoc entity linking
//
// All handlers include proper error handling, request validation,
// and JSON response formatting.
package handlers
