// Package captcha implements the arithmetic human-verification challenge
// shown before a password is requested at login.
package captcha

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

const (
	minOperand = 1
	maxOperand = 10
)

var operators = []string{"+", "-", "*"}

// Challenge is one generated question and its expected answer.
type Challenge struct {
	Question string
	Answer   string

	A, B     int
	Operator string
}

// Generator draws fresh challenges. It never caches or reuses a previous one.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng. A nil rng uses the
// package-level math/rand/v2 source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// Generate picks two operands in [1,10] and an operator from {+, -, *}
// uniformly at random.
func (g *Generator) Generate() Challenge {
	a := minOperand + g.intN(maxOperand-minOperand+1)
	b := minOperand + g.intN(maxOperand-minOperand+1)
	op := operators[g.intN(len(operators))]
	return New(a, b, op)
}

// New builds the challenge for a fixed expression. It panics on an unknown
// operator.
func New(a, b int, op string) Challenge {
	var result int
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	default:
		panic(fmt.Sprintf("captcha: unknown operator %q", op))
	}
	return Challenge{
		Question: fmt.Sprintf("What is %d %s %d?", a, op, b),
		Answer:   strconv.Itoa(result),
		A:        a,
		B:        b,
		Operator: op,
	}
}

// Verify reports whether the user's answer equals the expected one.
// Surrounding whitespace from the input line is ignored; nothing else is
// normalized, so "+21" or "21.0" do not match "21".
func Verify(userAnswer, expected string) bool {
	return strings.TrimSpace(userAnswer) == expected
}
