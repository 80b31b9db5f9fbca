package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Variables visible to filter expressions.
const (
	VarSchema    = "schema"
	VarData      = "data"
	VarNamespace = "namespace"
	VarContexts  = "contexts"
)

// Input is the view of an event a filter expression is evaluated against.
type Input struct {
	Schema    string
	Data      map[string]interface{}
	Namespace string
	Contexts  []string
}

type Evaluator struct {
	env *cel.Env
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarSchema, cel.StringType),
		cel.Variable(VarData, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(VarNamespace, cel.StringType),
		cel.Variable(VarContexts, cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{env: env}, nil
}

func (e *Evaluator) ValidateExpression(expression string) error {
	_, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("CEL expression validation failed: %w", issues.Err())
	}
	return nil
}

// Filter is a compiled boolean expression.
type Filter struct {
	expression string
	program    cel.Program
}

func (e *Evaluator) CompileFilter(expression string) (*Filter, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter expression must return bool, got %v", ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Filter{expression: expression, program: program}, nil
}

func (f *Filter) Expression() string {
	return f.expression
}

func (f *Filter) Matches(ctx context.Context, in Input) (bool, error) {
	data := in.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	contexts := in.Contexts
	if contexts == nil {
		contexts = []string{}
	}

	result, _, err := f.program.ContextEval(ctx, map[string]interface{}{
		VarSchema:    in.Schema,
		VarData:      data,
		VarNamespace: in.Namespace,
		VarContexts:  contexts,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression: %w", err)
	}

	boolVal, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return bool, got %T", result.Value())
	}

	return boolVal, nil
}
