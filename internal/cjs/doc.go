// Package cjs rewrites one CommonJS file into flat global code.
//
// Назначение: найти require/module.exports/exports, снять UMD и IIFE
// обёртки, объявить пространство имён модуля и переписать все ссылки так,
// чтобы файлы можно было склеить в один скрипт.
//
// Порядок: detect → (normalize ⇄ detect до неподвижной точки) →
// initialize → rewrite. Ничто, собранное одним проходом detect, не
// переживает мутацию дерева: области видимости строятся заново.
//
// Зависимости: internal/ast, internal/symbols, internal/modpath,
// internal/inline, internal/jsdoc, internal/diag, internal/uid.
package cjs
