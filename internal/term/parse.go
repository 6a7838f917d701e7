package term

import (
	"fmt"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
)

// Surface syntax for terms and types, used inside obligation bundles.
//
// Terms:  application spines with parentheses, e.g. "mk tt (pair tt tt)".
// Types:  "unit", "pair(unit,unit)", or a bare type name.

var (
	surfaceLexer = lexer.Must(lexer.Regexp(`(\s+)` +
		`|(?P<Ident>[a-zA-Z_][a-zA-Z0-9_']*)` +
		`|(?P<Punct>[(),])`,
	))
	termParser = participle.MustBuild(&termExpr{}, participle.Lexer(surfaceLexer))
	typeParser = participle.MustBuild(&typeExpr{}, participle.Lexer(surfaceLexer))
)

type termExpr struct {
	Atoms []*termAtom `@@ { @@ }`
}

type termAtom struct {
	Ident *string   `  @Ident`
	Paren *termExpr `| "(" @@ ")"`
}

type typeExpr struct {
	Name string      `@Ident`
	Args []*typeExpr `[ "(" @@ { "," @@ } ")" ]`
}

// ParseTerm parses the compact term syntax.
func ParseTerm(src string) (Term, error) {
	expr := &termExpr{}
	if err := termParser.ParseString(src, expr); err != nil {
		return nil, fmt.Errorf("parse term %q: %w", src, err)
	}
	return expr.term()
}

// MustParseTerm is ParseTerm that panics on error. For tests and
// statically known literals.
func MustParseTerm(src string) Term {
	t, err := ParseTerm(src)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *termExpr) term() (Term, error) {
	if len(e.Atoms) == 0 {
		return nil, fmt.Errorf("empty term")
	}
	head, err := e.Atoms[0].term()
	if err != nil {
		return nil, err
	}
	for _, atom := range e.Atoms[1:] {
		arg, err := atom.term()
		if err != nil {
			return nil, err
		}
		head = App{Fn: head, Arg: arg}
	}
	return head, nil
}

func (a *termAtom) term() (Term, error) {
	if a.Ident != nil {
		return Sym{Name: *a.Ident}, nil
	}
	return a.Paren.term()
}

// ParseType parses the compact type syntax.
func ParseType(src string) (Type, error) {
	expr := &typeExpr{}
	if err := typeParser.ParseString(src, expr); err != nil {
		return nil, fmt.Errorf("parse type %q: %w", src, err)
	}
	return expr.typ()
}

// MustParseType is ParseType that panics on error.
func MustParseType(src string) Type {
	ty, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return ty
}

func (e *typeExpr) typ() (Type, error) {
	switch e.Name {
	case "unit":
		if len(e.Args) != 0 {
			return nil, fmt.Errorf("unit takes no type arguments")
		}
		return Unit{}, nil
	case "pair":
		if len(e.Args) != 2 {
			return nil, fmt.Errorf("pair takes exactly 2 type arguments, got %d", len(e.Args))
		}
		fst, err := e.Args[0].typ()
		if err != nil {
			return nil, err
		}
		snd, err := e.Args[1].typ()
		if err != nil {
			return nil, err
		}
		return Pair{Fst: fst, Snd: snd}, nil
	default:
		if len(e.Args) != 0 {
			return nil, fmt.Errorf("type %s takes no arguments", e.Name)
		}
		return Named{Name: e.Name}, nil
	}
}
