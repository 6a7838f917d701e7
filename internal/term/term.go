package term

import "strings"

// Term is a sealed interface representing nodes of the object syntax.
// Only Sym and App implement it. The engine never inspects evidence
// beyond this structure: a term is a symbol or an application, nothing
// else.
type Term interface {
	termNode() // Sealed - only these types implement it
	String() string
}

// Sym is a symbol reference: a predicate head, a constructor, or an
// opaque evidence name. Which of those it is depends entirely on the
// environment and family declarations it is used with.
type Sym struct {
	Name string
}

func (Sym) termNode() {}

func (s Sym) String() string { return s.Name }

// App is a single application node. Multi-argument application is
// expressed as a left-nested spine of App nodes, curried style.
type App struct {
	Fn  Term
	Arg Term
}

func (App) termNode() {}

func (a App) String() string {
	var b strings.Builder
	b.WriteString(a.Fn.String())
	b.WriteByte(' ')
	if _, nested := a.Arg.(App); nested {
		b.WriteByte('(')
		b.WriteString(a.Arg.String())
		b.WriteByte(')')
	} else {
		b.WriteString(a.Arg.String())
	}
	return b.String()
}

// S is a shorthand constructor for Sym.
func S(name string) Sym {
	return Sym{Name: name}
}

// Apply builds the application spine head a1 a2 ... an.
// With no arguments it returns head unchanged.
func Apply(head Term, args ...Term) Term {
	t := head
	for _, a := range args {
		t = App{Fn: t, Arg: a}
	}
	return t
}

// Spine unwinds an application spine completely, returning the bare
// head and the applied arguments in left-to-right order. A Sym has an
// empty argument list.
func Spine(t Term) (Term, []Term) {
	var args []Term
	for {
		app, ok := t.(App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		t = app.Fn
	}
	// Arguments were collected innermost-first; restore natural order.
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return t, args
}

// StripApps removes exactly n trailing applications from t, returning
// the remaining head and the removed arguments in natural order.
// Reports ok=false if t carries fewer than n applications.
func StripApps(t Term, n int) (head Term, args []Term, ok bool) {
	args = make([]Term, n)
	for i := n - 1; i >= 0; i-- {
		app, isApp := t.(App)
		if !isApp {
			return nil, nil, false
		}
		args[i] = app.Arg
		t = app.Fn
	}
	return t, args, true
}

// Equal reports structural equality of two terms.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Sym:
		bv, ok := b.(Sym)
		return ok && av.Name == bv.Name
	case App:
		bv, ok := b.(App)
		return ok && Equal(av.Fn, bv.Fn) && Equal(av.Arg, bv.Arg)
	default:
		return false
	}
}

// Head returns the bare head symbol of t's spine, if it is a Sym.
func Head(t Term) (Sym, bool) {
	h, _ := Spine(t)
	s, ok := h.(Sym)
	return s, ok
}

// IsApp reports whether t is application-shaped.
func IsApp(t Term) bool {
	_, ok := t.(App)
	return ok
}
