// Package predicate compiles textual expressions such as ".age >= 21" or
// "~ ^a" into predicates over decoded YAML/JSON values.
//
// An expression is an optional path, an operator and, for every operator
// except truthy and falsy, a literal:
//
//	.name ~ ^b       # regexp against the string form of .name
//	.tags.0 == go    # first element of .tags
//	> 2              # the element itself
//	.active truthy   # loose truthiness, see Truthy
//
// Literals are parsed as YAML scalars, so 2 is a number, "2" is a string and
// null is nil.
package predicate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type Op string

const (
	OpEq       Op = "=="
	OpNe       Op = "!="
	OpGt       Op = ">"
	OpGe       Op = ">="
	OpLt       Op = "<"
	OpLe       Op = "<="
	OpMatch    Op = "~"
	OpNotMatch Op = "!~"
	OpTruthy   Op = "truthy"
	OpFalsy    Op = "falsy"
)

func (o Op) takesLiteral() bool {
	return o != OpTruthy && o != OpFalsy
}

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Predicate is a single parsed expression.
type Predicate struct {
	// Path selects the value to test. Empty means the element itself.
	Path  []string
	Op    Op
	Value any

	literal string
	re      *regexp.Regexp
}

// Test reports whether v satisfies the expression. A path that does not
// resolve fails every operator except falsy.
func (p *Predicate) Test(v any) bool {
	target, ok := Resolve(v, p.Path)
	if !ok {
		return p.Op == OpFalsy
	}

	switch p.Op {
	case OpTruthy:
		return Truthy(target)
	case OpFalsy:
		return !Truthy(target)
	case OpMatch:
		return p.re.MatchString(stringForm(target))
	case OpNotMatch:
		return !p.re.MatchString(stringForm(target))
	case OpEq:
		return equal(target, p.Value)
	case OpNe:
		return !equal(target, p.Value)
	}

	c, ok := compare(target, p.Value)
	if !ok {
		return false
	}

	switch p.Op {
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	default:
		return false
	}
}

// String returns the normalized form of the expression.
func (p *Predicate) String() string {
	path := "."
	if len(p.Path) > 0 {
		path = "." + strings.Join(p.Path, ".")
	}

	if !p.Op.takesLiteral() {
		return fmt.Sprintf("%s %s", path, p.Op)
	}

	return fmt.Sprintf("%s %s %s", path, p.Op, p.literal)
}

// Mode controls how Compile combines several expressions.
type Mode struct {
	// Any keeps an element when at least one expression holds, instead of all.
	Any bool

	// Negate inverts the combined result.
	Negate bool
}

// Compile parses every expression and combines them according to mode. All
// parse failures are reported together. With no expressions the result keeps
// truthy elements.
func Compile(exprs []string, mode Mode) (func(any) bool, error) {
	var result *multierror.Error
	preds := make([]*Predicate, 0, len(exprs))

	for i, expr := range exprs {
		p, err := Parse(expr)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "where[%d] '%s'", i, expr))
			continue
		}
		preds = append(preds, p)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	if len(preds) == 0 {
		preds = append(preds, &Predicate{Op: OpTruthy})
	}

	return func(v any) bool {
		keep := !mode.Any
		for _, p := range preds {
			if p.Test(v) == mode.Any {
				keep = mode.Any
				break
			}
		}

		return keep != mode.Negate
	}, nil
}
