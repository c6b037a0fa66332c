package auth

import (
	"testing"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/matryer/is"
)

func TestHiddenResourcesAreNeverVisible(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "secret",
		Hidden:     true,
		AccessControl: domain.AccessControl{
			RequiredScopes: []string{"read:datasets"},
		},
	}

	is.True(!IsVisible(r, Anonymous()))
	is.True(!IsVisible(r, Authenticated("read:datasets")))
}

func TestScopeGatedResourceIsInvisibleToAnonymousContexts(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "gated",
		AccessControl: domain.AccessControl{
			RequiredScopes: []string{"read:datasets"},
		},
	}

	is.True(!IsVisible(r, Anonymous()))
	is.True(!IsAccessible(r, Anonymous()))
}

func TestScopeGatedResourceRequiresASupersetOfScopes(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "gated",
		AccessControl: domain.AccessControl{
			RequiredScopes: []string{"read:datasets", "read:variables"},
		},
	}

	is.True(!IsVisible(r, Authenticated("read:datasets")))
	is.True(!IsAccessible(r, Authenticated("read:datasets")))

	granted := Authenticated("read:datasets", "read:variables", "write:datasets")
	is.True(IsVisible(r, granted))
	is.True(IsAccessible(r, granted))
}

func TestSubstituteResourceIsAnonymousOnly(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "placeholder",
		AccessControl: domain.AccessControl{
			IsSubstitute: true,
		},
	}

	is.True(IsVisible(r, Anonymous()))
	is.True(!IsVisible(r, Authenticated("read:datasets")))
}

func TestVisibilityIsStableAcrossRepeatedCalls(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "placeholder",
		AccessControl: domain.AccessControl{
			IsSubstitute: true,
		},
	}

	for i := 0; i < 10; i++ {
		is.True(IsVisible(r, Anonymous()))
		is.True(!IsVisible(r, Authenticated("read:datasets")))
	}
}

func TestSubstituteWithRequiredScopesLetsTheScopeTestWin(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{
		Identifier: "placeholder",
		AccessControl: domain.AccessControl{
			IsSubstitute:   true,
			RequiredScopes: []string{"read:datasets"},
		},
	}

	// anonymous contexts still see the substitute, but may not open it
	is.True(IsVisible(r, Anonymous()))
	is.True(!IsAccessible(r, Anonymous()))

	// authenticated contexts are governed by their scopes alone
	is.True(IsVisible(r, Authenticated("read:datasets")))
	is.True(IsAccessible(r, Authenticated("read:datasets")))
	is.True(!IsVisible(r, Authenticated("something:else")))
}

func TestUnrestrictedResourcesAreVisibleToEveryone(t *testing.T) {
	is := is.New(t)

	r := domain.DatasetResource{Identifier: "open"}

	is.True(IsVisible(r, Anonymous()))
	is.True(IsVisible(r, Authenticated("read:datasets")))
	is.True(IsAccessible(r, Anonymous()))
}
