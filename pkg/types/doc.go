// Package types defines the Table interface, the categorical data model
// (Component, Category, Distribution, ContingencyTable, LabeledMatrix), the
// ordered metric Registry, and the standard error types for the bias metrics
// engine.
//
// Every value in this package is built once and read many times. Nothing is
// mutated after construction except LabeledMatrix, which is an output owned
// by the caller.
package types
