package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeKeys(t *testing.T) {
	assert.Equal(t, "unit", Unit{}.Key())
	assert.Equal(t, "pair(unit,unit)", Pair{Fst: Unit{}, Snd: Unit{}}.Key())
	assert.Equal(t, "pair(pair(unit,unit),color)",
		Pair{Fst: Pair{Fst: Unit{}, Snd: Unit{}}, Snd: Named{Name: "color"}}.Key())
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, TypeEqual(Unit{}, Unit{}))
	assert.True(t, TypeEqual(
		Pair{Fst: Unit{}, Snd: Unit{}},
		Pair{Fst: Unit{}, Snd: Unit{}},
	))
	assert.False(t, TypeEqual(Unit{}, Named{Name: "unit2"}))
}

func TestTypeOfBuiltins(t *testing.T) {
	env := Env{}

	ty, err := env.TypeOf(TT())
	require.NoError(t, err)
	assert.True(t, TypeEqual(Unit{}, ty))

	ty, err = env.TypeOf(MkPair(TT(), MkPair(TT(), TT())))
	require.NoError(t, err)
	assert.Equal(t, "pair(unit,pair(unit,unit))", ty.Key())
}

func TestTypeOfEnvSymbol(t *testing.T) {
	env := Env{"red": Named{Name: "color"}}

	ty, err := env.TypeOf(S("red"))
	require.NoError(t, err)
	assert.Equal(t, "color", ty.Key())
}

func TestTypeOfUnknownSymbol(t *testing.T) {
	env := Env{}

	_, err := env.TypeOf(S("mystery"))
	assert.Error(t, err)
}

func TestTypeOfNonValueApplication(t *testing.T) {
	env := Env{}

	// Evidence-shaped applications are untypable as index values.
	_, err := env.TypeOf(Apply(S("mk"), TT()))
	assert.Error(t, err)
}

func TestFamilyValidate(t *testing.T) {
	fam := &Family{
		Name:  "Elem",
		Arity: 2,
		Ctors: []Ctor{
			{Name: "mk", Indices: []Term{TT(), MkPair(TT(), TT())}},
		},
	}
	assert.NoError(t, fam.Validate())
}

func TestFamilyValidateArityMismatch(t *testing.T) {
	fam := &Family{
		Name:  "Elem",
		Arity: 2,
		Ctors: []Ctor{
			{Name: "mk", Indices: []Term{TT()}},
		},
	}
	assert.Error(t, fam.Validate())
}

func TestFamilyValidateDuplicateCtor(t *testing.T) {
	fam := &Family{
		Name:  "Elem",
		Arity: 0,
		Ctors: []Ctor{
			{Name: "mk", Indices: nil},
			{Name: "mk", Indices: nil},
		},
	}
	assert.Error(t, fam.Validate())
}

func TestFamilyCtorLookup(t *testing.T) {
	fam := &Family{
		Name:  "Elem",
		Arity: 0,
		Ctors: []Ctor{{Name: "mk"}, {Name: "mk2"}},
	}

	c, ok := fam.Ctor("mk2")
	require.True(t, ok)
	assert.Equal(t, "mk2", c.Name)

	_, ok = fam.Ctor("absent")
	assert.False(t, ok)
}
