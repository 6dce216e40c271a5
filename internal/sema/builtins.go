package sema

import "math"

// Встроенные константы OpenQASM 3; юникодные имена приходят уже в NFC.
var builtinConstants = map[string]float64{
	"pi":    math.Pi,
	"π":     math.Pi,
	"tau":   2 * math.Pi,
	"τ":     2 * math.Pi,
	"euler": math.E,
	"ℇ":     math.E,
}

var builtinFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
}

type gateInfo struct {
	params int
	qubits int
}

// builtinGates is the stdgates.inc library plus the U and CX primitives.
var builtinGates = map[string]gateInfo{
	"U":    {3, 1},
	"CX":   {0, 2},
	"id":   {0, 1},
	"x":    {0, 1},
	"y":    {0, 1},
	"z":    {0, 1},
	"h":    {0, 1},
	"s":    {0, 1},
	"sdg":  {0, 1},
	"t":    {0, 1},
	"tdg":  {0, 1},
	"sx":   {0, 1},
	"rx":   {1, 1},
	"ry":   {1, 1},
	"rz":   {1, 1},
	"p":    {1, 1},
	"u1":   {1, 1},
	"u2":   {2, 1},
	"u3":   {3, 1},
	"u":    {3, 1},
	"cx":   {0, 2},
	"cy":   {0, 2},
	"cz":   {0, 2},
	"ch":   {0, 2},
	"swap": {0, 2},
	"crx":  {1, 2},
	"cry":  {1, 2},
	"crz":  {1, 2},
	"cp":   {1, 2},
	"cu1":  {1, 2},
	"ccx":  {0, 3},
}

// BuiltinGate reports the parameter and qubit counts of a library gate.
func BuiltinGate(name string) (params, qubits int, ok bool) {
	info, ok := builtinGates[name]
	return info.params, info.qubits, ok
}
