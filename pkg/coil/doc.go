// Package coil implements the coil configuration language: a lexer, a
// recursive-descent parser that builds a prototype tree, and an
// expansion engine that resolves prototype inheritance, symbolic links,
// string interpolation, and @map broadcasting into a final value tree.
package coil
