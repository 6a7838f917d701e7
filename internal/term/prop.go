package term

// Proposition formers. Goals produced by the motive builder and
// rewritten by the discharge engine are themselves terms, built from
// these reserved head symbols. Keeping them in the term layer lets
// both sides pattern-match on the same spines.
const (
	// EqName heads the proposition (eq a b): a equals b.
	EqName = "eq"
	// TransportName heads (transport p x): x moved along the index
	// equality proof p.
	TransportName = "transport"
	// ReflName is the reflexivity proof.
	ReflName = "refl"
	// GivenName heads (given h p): proposition p under hypothesis h.
	// Each branch of a case split carries exactly one hypothesis, the
	// index-tuple equality, so a single reserved hypothesis reference
	// suffices.
	GivenName = "given"
	// HypName references the branch hypothesis from inside p.
	HypName = "hyp"
)

// MkEq builds the proposition (eq a b).
func MkEq(a, b Term) Term {
	return Apply(Sym{Name: EqName}, a, b)
}

// MkTransport builds (transport p x).
func MkTransport(p, x Term) Term {
	return Apply(Sym{Name: TransportName}, p, x)
}

// Refl is the reflexivity proof term.
func Refl() Term { return Sym{Name: ReflName} }

// MatchEq destructures (eq a b). ok is false for any other shape.
func MatchEq(t Term) (a, b Term, ok bool) {
	head, args := Spine(t)
	hs, isSym := head.(Sym)
	if !isSym || hs.Name != EqName || len(args) != 2 {
		return nil, nil, false
	}
	return args[0], args[1], true
}

// MatchTransport destructures (transport p x). ok is false for any
// other shape.
func MatchTransport(t Term) (p, x Term, ok bool) {
	head, args := Spine(t)
	hs, isSym := head.(Sym)
	if !isSym || hs.Name != TransportName || len(args) != 2 {
		return nil, nil, false
	}
	return args[0], args[1], true
}

// IsRefl reports whether t is the reflexivity proof.
func IsRefl(t Term) bool {
	s, ok := t.(Sym)
	return ok && s.Name == ReflName
}

// MkGiven builds (given h p).
func MkGiven(h, p Term) Term {
	return Apply(Sym{Name: GivenName}, h, p)
}

// MatchGiven destructures (given h p).
func MatchGiven(t Term) (h, p Term, ok bool) {
	head, args := Spine(t)
	hs, isSym := head.(Sym)
	if !isSym || hs.Name != GivenName || len(args) != 2 {
		return nil, nil, false
	}
	return args[0], args[1], true
}

// Hyp is the reserved reference to the branch hypothesis.
func Hyp() Term { return Sym{Name: HypName} }

// Subst replaces every occurrence of the symbol name in t with repl.
func Subst(t Term, name string, repl Term) Term {
	switch v := t.(type) {
	case Sym:
		if v.Name == name {
			return repl
		}
		return v
	case App:
		return App{Fn: Subst(v.Fn, name, repl), Arg: Subst(v.Arg, name, repl)}
	default:
		return t
	}
}
