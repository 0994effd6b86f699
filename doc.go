// Package composer builds parameterized PostgreSQL queries and resolves
// configured relations over them without the N+1 query pattern.
//
// Models are registered once with their relations (belongsTo, hasOne,
// hasMany, hasManyThrough). A query builder rooted at a model can then
// include any of those relations; at fetch time each include collapses
// into a single batched, deduplicated query whose results are grouped
// and attached back onto the parent rows.
//
// The package never opens connections on its own. All I/O flows
// through the Executor interface, usually a SQLExecutor over a
// database/sql pool.
package composer
