package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsmith/internal/card"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(card.TechReact, NewReactCrew))
	require.Error(t, r.Register(card.TechReact, NewReactCrew))
}

func TestRegistryRejectsEmptyRegistrations(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Register("", NewReactCrew))
	require.Error(t, r.Register(card.TechRails, nil))
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(card.TechRails, NewRailsCrew)

	p, ok := r.Resolve(card.TechRails)
	require.True(t, ok)
	require.Equal(t, card.TechRails, p.Technology())

	_, ok = r.Resolve(card.TechApex)
	require.False(t, ok)
}

func TestDefaultRegistryCoversConcreteTechnologies(t *testing.T) {
	r := DefaultRegistry()
	require.Equal(t,
		[]card.Technology{card.TechApex, card.TechFrontend, card.TechRails, card.TechReact},
		r.Technologies(),
	)
}

func TestBuildIsTotal(t *testing.T) {
	r := DefaultRegistry()
	for _, tech := range card.Technologies() {
		p := r.Build(tech)
		if p == nil {
			t.Fatalf("Build(%s) returned nil", tech)
		}
	}
}

func TestBuildFallsBackToGenericCrew(t *testing.T) {
	r := DefaultRegistry()

	p := r.Build(card.TechUnknown)
	require.Equal(t, card.TechUnknown, p.Technology())

	// Same fallback for a technology nobody registered.
	p = r.Build(card.Technology("cobol"))
	require.Equal(t, card.TechUnknown, p.Technology())
}
