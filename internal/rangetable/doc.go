// Package rangetable holds the ISBN registration-group table: the sorted,
// immutable set of group prefixes with their registrant-range rules, the
// prefix search over it and the JSON artifact the builder publishes.
package rangetable
