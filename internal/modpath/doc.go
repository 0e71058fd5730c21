// Package modpath maps files and require() literals to module paths and
// canonical module names (module$lib$a).
//
// Назначение: простое разрешение путей относительно корней проекта и
// каноническое имя пространства имён модуля.
// Не делает: поиска в node_modules, чтения package.json, алиасов.
// Зависимости: golang.org/x/text/unicode/norm, internal/diag.
package modpath
