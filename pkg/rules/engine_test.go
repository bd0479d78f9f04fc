package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tg-relay/pkg/domain"
)

func TestDecide_DefaultAllow(t *testing.T) {
	s := &domain.Settings{KeywordInitial: []string{}, KeywordContain: []string{}}

	for _, text := range []string{"anything", "", "some long text with words"} {
		d := Decide(text, s)
		assert.True(t, d.Forward, "text %q should be forwarded with empty rules", text)
		assert.Empty(t, d.Keyword)
		assert.Equal(t, "default", d.Reason())
	}
}

func TestDecide_PrefixMatch(t *testing.T) {
	tbl := []struct {
		name     string
		keywords []string
		text     string
		forward  bool
		keyword  string
	}{
		{"exact prefix", []string{"alpha"}, "alpha release is out", true, "alpha"},
		{"case insensitive text", []string{"alpha"}, "Alpha wins", true, "alpha"},
		{"case insensitive keyword", []string{"ALPHA"}, "alpha wins", true, "ALPHA"},
		{"not a prefix", []string{"alpha"}, "the alpha release", false, ""},
		{"first hit wins", []string{"brave", "br"}, "brave new world", true, "brave"},
		{"order respected", []string{"br", "brave"}, "brave new world", true, "br"},
		{"empty text no match", []string{"alpha"}, "", false, ""},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			s := &domain.Settings{KeywordInitial: tt.keywords}
			d := Decide(tt.text, s)
			assert.Equal(t, tt.forward, d.Forward)
			assert.Equal(t, tt.keyword, d.Keyword)
		})
	}
}

func TestDecide_ContainMatch(t *testing.T) {
	s := &domain.Settings{KeywordContain: []string{"ca"}}

	d := Decide("breaking CA news", s)
	assert.True(t, d.Forward)
	assert.Equal(t, "ca", d.Keyword)
	assert.Equal(t, "keyword: ca", d.Reason())

	d = Decide("nothing relevant here... almost", s)
	assert.True(t, d.Forward, "substring matches anywhere")

	d = Decide("no hits", s)
	assert.False(t, d.Forward)
	assert.Equal(t, "no match", d.Reason())
}

func TestDecide_PrefixTakesPrecedence(t *testing.T) {
	s := &domain.Settings{
		KeywordInitial: []string{"x"},
		KeywordContain: []string{"y"},
	}

	d := Decide("x contains y", s)
	assert.True(t, d.Forward)
	assert.Equal(t, "x", d.Keyword, "prefix rule wins over substring rule")
}

func TestDecide_NoMatchWithRulesConfigured(t *testing.T) {
	s := &domain.Settings{
		KeywordInitial: []string{"alpha"},
		KeywordContain: []string{"beta"},
	}

	d := Decide("gamma delta", s)
	assert.False(t, d.Forward)
	assert.Empty(t, d.Keyword)

	// empty text never matches once any rule is configured
	d = Decide("", s)
	assert.False(t, d.Forward)
}
