package tenant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSubject_QueryParamWins(t *testing.T) {
	tests := []string{
		"https://portal.example/assets/subjects/_template/notes.html?subject=Mecánica&sem=4",
		"https://portal.example/semestre4.html?subject=Mecánica",
		"https://portal.example/assets/subjects/otra/index.html?subject=Mecánica",
	}
	for _, raw := range tests {
		got, ok := ResolveSubject(Page{URL: raw})
		require.True(t, ok, raw)
		require.Equal(t, "Mecánica", got, raw)
	}
}

func TestResolveSubject_PathSegmentFallback(t *testing.T) {
	got, ok := ResolveSubject(Page{URL: "https://portal.example/assets/subjects/mecanica/notes.html"})
	require.True(t, ok)
	require.Equal(t, "mecanica", got)
}

func TestResolveSubject_PathSegmentPercentDecoded(t *testing.T) {
	got, ok := ResolveSubject(Page{URL: "https://portal.example/assets/subjects/F%C3%ADsica%20II/index.html"})
	require.True(t, ok)
	require.Equal(t, "Física II", got)
}

func TestResolveSubject_PathSegmentDecodedExactlyOnce(t *testing.T) {
	// %25 is a literal percent sign; decoding the segment twice would
	// either mangle it or fail on the resulting invalid escape.
	got, ok := ResolveSubject(Page{URL: "https://portal.example/assets/subjects/50%25off/notes.html"})
	require.True(t, ok)
	require.Equal(t, "50%off", got)

	got, ok = ResolveSubject(Page{URL: "https://portal.example/assets/subjects/100%2525/index.html"})
	require.True(t, ok)
	require.Equal(t, "100%25", got)
}

func TestResolveSubject_PathSegmentCasePreserving(t *testing.T) {
	got, ok := ResolveSubject(Page{URL: "https://portal.example/assets/subjects/MecanicaClasica/index.html"})
	require.True(t, ok)
	require.Equal(t, "MecanicaClasica", got)
}

func TestResolveSubject_MetaTagFallback(t *testing.T) {
	page := Page{
		URL:  "https://portal.example/notes.html",
		Meta: map[string]string{MetaSubjectTag: "ondas"},
	}
	got, ok := ResolveSubject(page)
	require.True(t, ok)
	require.Equal(t, "ondas", got)
}

func TestResolveSubject_Unresolved(t *testing.T) {
	_, ok := ResolveSubject(Page{URL: "https://portal.example/index.html"})
	require.False(t, ok)

	// empty query parameter does not count as a match
	_, ok = ResolveSubject(Page{URL: "https://portal.example/index.html?subject="})
	require.False(t, ok)
}

func TestResolveTerm(t *testing.T) {
	require.Equal(t, 4, ResolveTerm(Page{URL: "https://portal.example/x?sem=4"}))
	require.Equal(t, 1, ResolveTerm(Page{URL: "https://portal.example/x"}))
	require.Equal(t, 1, ResolveTerm(Page{URL: "https://portal.example/x?sem=0"}))
	require.Equal(t, 1, ResolveTerm(Page{URL: "https://portal.example/x?sem=abc"}))
}

func TestPath_Resolved(t *testing.T) {
	require.False(t, Path{}.Resolved())
	require.False(t, NewPath("u1", "").Resolved())
	require.False(t, NewPath("", "mecanica").Resolved())
	require.True(t, NewPath("u1", "mecanica").Resolved())
}

func TestPath_DocPrefix(t *testing.T) {
	p := NewPath("u1", "mecanica")
	require.Equal(t, "users/u1/subjects/mecanica", p.DocPrefix())
}
