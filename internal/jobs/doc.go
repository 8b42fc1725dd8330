// Package jobs contains background workers that run alongside the HTTP
// server. Each job owns one goroutine, started with Start and drained
// with Stop.
package jobs
