// Package poller keeps client-held copies of remote collections fresh.
//
// A [Fetcher] runs one fetch function immediately and then on a fixed
// interval, never overlapping calls and keeping the last good value when a
// fetch fails. A [Scheduler] shares fetchers between views: every view that
// watches the same [Key] joins one polling loop, and the loop stops when the
// last view leaves.
package poller
