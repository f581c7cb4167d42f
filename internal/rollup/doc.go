// Package rollup derives dashboard state from raw backend records: project
// status and progress, overdue todos, counters and leaderboards, compound
// filters and timeline geometry. Every function is pure and recomputed from
// scratch on each refresh.
package rollup
