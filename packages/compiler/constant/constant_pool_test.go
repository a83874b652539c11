package constant

import (
	"strings"
	"testing"

	"tplc-go/packages/compiler/output"
)

func TestShortStringsStayInline(t *testing.T) {
	pool := NewConstantPool()
	literal := output.NewLiteralExpr("hello", nil, nil)

	got := pool.GetConstLiteral(literal, false)

	if got != output.OutputExpression(literal) {
		t.Errorf("short string should be returned as-is, got %T", got)
	}
	if len(pool.Statements) != 0 {
		t.Errorf("pool statements = %d, want 0", len(pool.Statements))
	}
}

func TestLongStringsAreHoisted(t *testing.T) {
	pool := NewConstantPool()
	long := strings.Repeat("x", PoolInclusionLengthThresholdForStrings)

	got := pool.GetConstLiteral(output.NewLiteralExpr(long, nil, nil), false)

	ref, ok := got.(*output.ReadVarExpr)
	if !ok {
		t.Fatalf("long string should be hoisted to a shared constant, got %T", got)
	}
	if ref.Name != "_c0" {
		t.Errorf("constant name = %q, want _c0", ref.Name)
	}
	if len(pool.Statements) != 1 {
		t.Errorf("pool statements = %d, want 1", len(pool.Statements))
	}
}

func TestForceSharedHoistsAnyLiteral(t *testing.T) {
	pool := NewConstantPool()

	got := pool.GetConstLiteral(output.NewLiteralExpr("hi", nil, nil), true)

	if _, ok := got.(*output.ReadVarExpr); !ok {
		t.Errorf("forceShared should hoist even a short string, got %T", got)
	}
}

func TestEquivalentLiteralsShareOneDefinition(t *testing.T) {
	pool := NewConstantPool()
	makeArray := func() output.OutputExpression {
		return output.NewLiteralArrayExpr([]output.OutputExpression{
			output.NewLiteralExpr("a", nil, nil),
			output.NewLiteralExpr(1, nil, nil),
		}, nil, nil)
	}

	first := pool.GetConstLiteral(makeArray(), true)
	second := pool.GetConstLiteral(makeArray(), true)

	if first != second {
		t.Error("equivalent literals should resolve to the same reference")
	}
	if len(pool.Statements) != 1 {
		t.Errorf("pool statements = %d, want 1", len(pool.Statements))
	}

	other := pool.GetConstLiteral(output.NewLiteralExpr(2, nil, nil), true)
	if other == first {
		t.Error("distinct literals should not share a reference")
	}
	if len(pool.Statements) != 2 {
		t.Errorf("pool statements = %d, want 2", len(pool.Statements))
	}
}
