// Package symbols builds lexical scopes for a parsed script and resolves
// names to their declarations.
//
// Назначение: таблица областей видимости для CommonJS-прохода.
// Не делает: вывода типов и анализа потока значений.
// Зависимости: internal/ast.
package symbols
