// Package format prints a parsed script back in canonical form: one
// statement per line, single spaces around binary operators and after
// commas, the GoTo spelling, and only the parentheses the parser needs.
//
// Назначение: команда fmt поверх уже разобранного AST.
// Не делает: разбор, проверку, IO.
// Зависимости: internal/ast, internal/parser (приоритеты), internal/source.
package format
