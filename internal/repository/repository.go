package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
// Lookups of a single row return sql.ErrNoRows when nothing matches.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
