package test

import (
	"math/rand"
	"strconv"
	"strings"
)

const validTokens = "1;2;6;12;20;100;1234567;d;D;.;+;-;*;/;(;)"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression builds a well-formed dice expression nested at most
// depth levels deep. Counts and sides are kept small and no division is
// generated, so every expression evaluates without error.
func GetRandomExpression(r *rand.Rand, depth int) string {
	if depth <= 0 {
		return randomOperand(r)
	}

	switch r.Intn(4) {
	case 0:
		return randomOperand(r)
	case 1:
		return "-" + GetRandomExpression(r, depth-1)
	case 2:
		return "(" + GetRandomExpression(r, depth-1) + ")"
	default:
		ops := []string{" + ", " - ", " * "}
		return GetRandomExpression(r, depth-1) + ops[r.Intn(len(ops))] + GetRandomExpression(r, depth-1)
	}
}

func randomOperand(r *rand.Rand) string {
	sides := strconv.Itoa(r.Intn(20) + 1)

	switch r.Intn(3) {
	case 0:
		return strconv.Itoa(r.Intn(100))
	case 1:
		return "d" + sides
	default:
		return strconv.Itoa(r.Intn(5)+1) + ".d" + sides
	}
}
