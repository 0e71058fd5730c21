// Package fuzztests houses Go fuzz harnesses for the rewrite pipeline
// (source -> lexer -> parser -> cjs). They guard against panics, hangs and
// broken trees on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через лексер, парсер и
// переписывание CommonJS и проверять целостность дерева после него.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
