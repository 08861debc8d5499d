// Package basic implements the arithmetic expressions of a Dartmouth-style
// BASIC.
//
// An expression is made of numbers, the operators + - * / ^, and parentheses.
// Tokenize splits the source into tokens, Parse builds a parse tree with one
// node type per grammar rule, and Evaluate reduces the tree to a float64.
// "(1+1) + 2 * (3^2)" evaluates to 20.
//
// The grammar is deliberately narrow. A minus sign may only precede a number,
// so "5 + -3" is fine but "-(1+2)" is not, and an exponent must be a single
// number, so "2^3^2" and "2^(1+1)" are rejected. Identifiers and string
// literals are tokenized but never accepted by the parser.
//
// Division by zero is not an error: "1/0" evaluates to +Inf. For results to
// more than float64 precision, evaluate a tree with a Context instead.
//
// All functions in this package are safe for concurrent use on independent
// inputs. A Context is not.
package basic
