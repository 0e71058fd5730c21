// Package format prints an ast.Tree back to JavaScript.
//
// Назначение: канонический вывод после переписывания модулей, опционально с JSDoc.
// Не делает: сохранения исходного форматирования и комментариев кроме JSDoc.
// Зависимости: internal/ast, internal/jsdoc, internal/parser (приоритеты операторов).
package format
