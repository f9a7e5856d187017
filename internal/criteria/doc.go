// Package criteria implements the `field.operator=value` filter language
// used by every list and count endpoint.
//
// A Schema is an explicit per-entity field table. Parsing query parameters
// against it yields a Query (criteria, sort, page). The same Query can be
// evaluated in memory (Matches, Apply) or compiled to a MySQL predicate
// (Where, OrderBy); both paths agree on which rows match, including NULL
// handling, so a list and its count never disagree.
package criteria
