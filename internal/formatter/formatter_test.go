package formatter

import (
	"errors"
	"testing"

	"github.com/tangzhangming/wly/internal/parser"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "declarations",
			input:    "var   x:int=5;const var y : array< int > =[1,2 ,3];",
			expected: "var x: int = 5;\nconst var y: array<int> = [1, 2, 3];\n",
		},
		{
			name:     "expression statements get semicolons",
			input:    "a+b*-c\nprint(\"hi\\n\" , 'x')",
			expected: "a + b * -c;\nprint(\"hi\\n\", 'x');\n",
		},
		{
			name:  "function",
			input: "fn add(a:int,b:int):int{return (a+b)*2;}",
			expected: `fn add(a: int, b: int): int {
    return (a + b) * 2;
}
`,
		},
		{
			name:  "class with blank lines between members",
			input: "class P{var x:int=0;constructor(x:int){init(x)}fn get():int{return x;}fn none():int{}}",
			expected: `class P {
    var x: int = 0;

    constructor(x: int) {
        init(x);
    }

    fn get(): int {
        return x;
    }

    fn none(): int {}
}
`,
		},
		{
			name:     "collections and postfix",
			input:    `var m:map{string:int}={"a":1,"b":xs[0:2].len};`,
			expected: "var m: map{string: int} = {\"a\": 1, \"b\": xs[0:2].len};\n",
		},
		{
			name:     "empty",
			input:    "   \n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatWithDefaultOptions(tt.input, "test.wly")
			if err != nil {
				t.Fatalf("format error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("format mismatch\ngot:\n%q\nwant:\n%q", got, tt.expected)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"var x:int=5;fn f(a:int):int{return -(a+1)*!b;}",
		"class C{constructor(){}var v:array<map{string:char}> = [{'k':'v'}];}",
		"x[1]\n(y)\n-z == 1 != 2",
		`"tab\there" == "quote\"d"`,
	}

	compact := DefaultOptions()
	compact.SpaceAroundOps = false

	for _, opts := range []*Options{DefaultOptions(), compact} {
		for _, input := range inputs {
			once, err := Format(input, "test.wly", opts)
			if err != nil {
				t.Fatalf("%q: %v", input, err)
			}
			twice, err := Format(once, "test.wly", opts)
			if err != nil {
				t.Fatalf("%q: reformat error: %v", once, err)
			}
			if once != twice {
				t.Errorf("formatting is not idempotent\nfirst:\n%s\nsecond:\n%s", once, twice)
			}
		}
	}
}

func TestFormatCompactDeclaration(t *testing.T) {
	opts := DefaultOptions()
	opts.SpaceAroundOps = false

	got, err := Format("var v: array<int> = [1+2];", "test.wly", opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "var v: array<int> = [1+2];\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatOptions(t *testing.T) {
	opts := &Options{
		IndentStyle:        "tabs",
		SpaceAroundOps:     false,
		EnsureNewlineAtEOF: false,
	}

	got, err := Format("fn f():int{return 1+2;}", "test.wly", opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "fn f(): int {\n\treturn 1+2;\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatSyntaxError(t *testing.T) {
	_, err := FormatWithDefaultOptions("var x: int = ;", "test.wly")
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error type %T, want *parser.Error", err)
	}
	if perr.Kind != parser.SyntaxError {
		t.Errorf("kind got %v", perr.Kind)
	}
}
