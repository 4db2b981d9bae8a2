// Package fuzztests houses Go fuzz harnesses for the PixelWallE front end and
// interpreter (source -> lexer -> parser -> checker -> interpreter). They
// guard against panics, hangs and span corruption on arbitrary input.
//
// Назначение: прогонять произвольные байты через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/driver,
// internal/testkit.

package fuzztests
