// Package format prints OpenQASM 3 source text back from the AST.
//
// Назначение: вывод развёрнутой программы и однострочные фрагменты узлов для диагностик.
// Не делает: сохранения комментариев и исходного форматирования.
// Зависимости: internal/ast, internal/source.
package format
