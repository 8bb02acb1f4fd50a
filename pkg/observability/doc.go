/*
Package observability turns navigator lifecycle events into Prometheus metrics
and structured log lines.

Both are delivered as domain.LifecycleHooks, so they can be merged and passed
to the engine with troubleshoot.WithLifecycleHooks.
*/
package observability
