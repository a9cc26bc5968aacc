/*
Package observability provides tools for monitoring the NFA engine.

It turns engine lifecycle hooks into Prometheus metrics and structured audit logs,
and combines several hook sets into one so they can be passed to nfa.WithLifecycleHooks.
*/
package observability
