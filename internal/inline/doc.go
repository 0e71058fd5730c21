// Package inline turns a call of a function literal into a plain block of
// statements.
//
// Назначение: снять IIFE/UMD-обёртки, не переименовывая локальные имена.
// Не делает: анализа побочных эффектов за пределами литералов и имён,
// обработки `arguments` (вызывающий код такие функции отвергает).
// Зависимости: internal/ast, internal/uid.
package inline
