// Package fuzztests houses Go fuzz harnesses that exercise the front of the
// sharplint pipeline (source -> lexer -> parser). Its goal is to smoke test
// robustness and the lossless round trip on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер,
// проверяя, что конкатенация полного текста токенов и дерева равна входу.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/fix, internal/verify.

package fuzztests
