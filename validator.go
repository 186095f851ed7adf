package gridsheet

import (
	"fmt"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Validator checks a value before or after it is written to a cell.
// A strict validator rejects the write; a non-strict one lets it through
// and marks the cell invalid.
type Validator interface {
	IsValid(value any) bool
	IsStrict() bool
	Message() string
}

// SourceValidator accepts only values from a fixed list.
type SourceValidator struct {
	Values []any
	Strict bool
}

func (v SourceValidator) IsValid(value any) bool {
	if value == nil {
		return true
	}
	return slices.ContainsFunc(v.Values, func(allowed any) bool {
		return compareValues(allowed, value) == 0
	})
}

func (v SourceValidator) IsStrict() bool { return v.Strict }

func (v SourceValidator) Message() string {
	return fmt.Sprintf("value must be one of %v", v.Values)
}

// NumberValidator accepts values convertible to a number.
type NumberValidator struct {
	Strict bool
}

func (v NumberValidator) IsValid(value any) bool {
	if value == nil || value == "" {
		return true
	}
	_, ok := toFloat64(value)
	return ok
}

func (v NumberValidator) IsStrict() bool  { return v.Strict }
func (v NumberValidator) Message() string { return "value must be a number" }

// exprCache holds compiled validator programs, keyed by expression source.
var exprCache sync.Map // string → *vm.Program

// ExprValidator validates with a boolean expr-lang expression over the
// variable "value", e.g. `value > 0 && value < 100`.
type ExprValidator struct {
	Expression string
	Strict     bool
	Msg        string
}

// NewExprValidator compiles the expression once and returns a validator for it.
func NewExprValidator(expression string, strict bool) (*ExprValidator, error) {
	if _, err := compileValidator(expression); err != nil {
		return nil, err
	}
	return &ExprValidator{Expression: expression, Strict: strict}, nil
}

func compileValidator(expression string) (*vm.Program, error) {
	if cached, ok := exprCache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile validator %q: %w", expression, err)
	}
	exprCache.Store(expression, program)
	return program, nil
}

func (v *ExprValidator) IsValid(value any) bool {
	program, err := compileValidator(v.Expression)
	if err != nil {
		return false
	}
	if s, ok := value.(string); ok {
		// numeric text compares as a number
		if n, ok := toFloat64(s); ok {
			value = n
		}
	}
	out, err := expr.Run(program, map[string]any{"value": value})
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

func (v *ExprValidator) IsStrict() bool { return v.Strict }

func (v *ExprValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return fmt.Sprintf("value must satisfy %s", v.Expression)
}

// compareValues compares two values for ordering, numerically when both are numbers.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	fa, aOk := toFloat64(a)
	fb, bOk := toFloat64(b)
	if aOk && bOk {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	sa := fmt.Sprintf("%v", a)
	sb := fmt.Sprintf("%v", b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

// validate runs every validator against value. It reports whether the write
// may proceed and whether the resulting cell is valid.
func validate(validators []Validator, value any) (allowed, valid bool) {
	allowed, valid = true, true
	for _, v := range validators {
		if v.IsValid(value) {
			continue
		}
		valid = false
		if v.IsStrict() {
			allowed = false
		}
	}
	return allowed, valid
}
