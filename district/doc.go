// Package district provides the built-in district configurations.
//
// A district configuration observes System mutations and keeps seat
// allocations up to date:
//
//   - Unique apportions the whole electorate as one district and writes the
//     result to the global root.
//   - Multi apportions selected regions independently and writes each result
//     to its region, from where it rolls up to every ancestor.
//
// Both skip recomputes whose inputs are unchanged since their last
// write-back. The check is an xxh3 fingerprint of the district setup and the
// scope's votes and seats.
package district
