package query

import "testing"

// Expression structure is asserted through the parenthesized String()
// rendering, which makes associativity and precedence explicit.
func TestParseExpression_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"multiplication binds tighter than addition", "1 + 2 * 3", "(1 + (2 * 3))"},
		{"left associative subtraction", "10 - 4 - 3", "((10 - 4) - 3)"},
		{"parentheses override precedence", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"power and modulo at factor level", "2 ^ 3 % 5", "((2 ^ 3) % 5)"},
		{"comparison binds tighter than and", "a > 1 AND b < 2", "((a > 1) AND (b < 2))"},
		{"and binds tighter than or", "a = 1 OR b = 2 AND c = 3", "((a = 1) OR ((b = 2) AND (c = 3)))"},
		{"xor at or level", "a = 1 XOR b = 2 OR c = 3", "(((a = 1) XOR (b = 2)) OR (c = 3))"},
		{"arithmetic inside equality", "a + 1 = b * 2", "((a + 1) = (b * 2))"},
		{"not covers the whole comparison", "NOT a = 1", "(NOT (a = 1))"},
		{"sign binds tighter than addition", "-a + 1", "((- a) + 1)"},
		{"grouped disjunction", `(A = 1 OR B = 2) AND C != 3`, "(((A = 1) OR (B = 2)) AND (C != 3))"},
		{"string literal operand", `Name != "Bob"`, `(Name != "Bob")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse("GET * FROM t WHERE " + tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := q.Condition.String(); got != tt.expected {
				t.Errorf("parsed %q as %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
