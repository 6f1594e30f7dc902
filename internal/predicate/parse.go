package predicate

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Longest symbols first so ">=" is not read as ">".
var symbolOps = []Op{OpEq, OpNe, OpGe, OpLe, OpNotMatch, OpGt, OpLt, OpMatch}

var wordOps = []Op{OpTruthy, OpFalsy}

// Parse parses a single expression.
func Parse(expr string) (*Predicate, error) {
	rest := strings.TrimSpace(expr)
	if rest == "" {
		return nil, ErrEmptyExpression
	}

	p := &Predicate{}

	if strings.HasPrefix(rest, ".") {
		end := strings.IndexAny(rest, " \t=!<>~")
		if end == -1 {
			end = len(rest)
		}

		path, err := parsePath(rest[:end])
		if err != nil {
			return nil, err
		}
		p.Path = path
		rest = strings.TrimSpace(rest[end:])
	}

	op, rest, err := parseOp(rest)
	if err != nil {
		return nil, err
	}
	p.Op = op
	p.literal = strings.TrimSpace(rest)

	if !op.takesLiteral() {
		if p.literal != "" {
			return nil, errors.Errorf("operator '%s' takes no value, got '%s'", op, p.literal)
		}
		return p, nil
	}

	if p.literal == "" {
		return nil, errors.Errorf("operator '%s' requires a value", op)
	}

	switch op {
	case OpMatch, OpNotMatch:
		re, err := regexp.Compile(p.literal)
		if err != nil {
			return nil, errors.Wrap(err, "invalid regular expression")
		}
		p.re = re
	default:
		v, err := parseLiteral(p.literal)
		if err != nil {
			return nil, err
		}
		p.Value = v
	}

	return p, nil
}

func parsePath(s string) ([]string, error) {
	if s == "." {
		return nil, nil
	}

	keys := strings.Split(s[1:], ".")
	for _, k := range keys {
		if k == "" {
			return nil, errors.Errorf("invalid path '%s'; empty key", s)
		}
	}

	return keys, nil
}

func parseOp(s string) (Op, string, error) {
	for _, op := range symbolOps {
		if strings.HasPrefix(s, string(op)) {
			return op, s[len(op):], nil
		}
	}

	word, rest, _ := strings.Cut(s, " ")
	for _, op := range wordOps {
		if strings.EqualFold(word, string(op)) {
			return op, rest, nil
		}
	}

	if word == "" {
		return "", "", errors.Wrap(ErrUnknownOperator, "missing operator")
	}

	return "", "", errors.Wrapf(ErrUnknownOperator, "'%s'", word)
}

// parseLiteral reads a YAML scalar. Collections are rejected since nothing
// can compare against them.
func parseLiteral(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, errors.Wrapf(err, "invalid value '%s'", s)
	}

	switch v.(type) {
	case map[string]any, map[any]any, []any:
		return nil, errors.Errorf("value '%s' must be a scalar", s)
	}

	return v, nil
}
