// Package datacompat is the runtime support library for code emitted by the
// datacompat generator. Generated value types depend on it for their hash
// combination, floating-point comparison, and string formatting helpers.
//
// The package is intentionally small and dependency-free: a generated file
// carries exactly one fixed import, and that import must never force extra
// modules onto consumers.
package datacompat
