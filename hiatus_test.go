package escansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindHiatuses(t *testing.T) {
	tests := []struct {
		name    string
		chains  []Chain
		relaxed bool
		want    []Hiatus
	}{
		{
			name:   "before stress",
			chains: []Chain{{"pja", "dO", "so"}, {"se", "ɲOɾ"}},
			want:   []Hiatus{{At: Boundary{Chain: 0, Syllable: 0}}},
		},
		{
			name:   "usual words first",
			chains: []Chain{{"pja", "dO", "so"}, {"fiEl"}},
			want: []Hiatus{
				{At: Boundary{Chain: 1, Syllable: 0}, Usual: true},
				{At: Boundary{Chain: 0, Syllable: 0}},
			},
		},
		{
			name:   "after stress",
			chains: []Chain{{"tE", "nwe"}, {"sOl"}},
			want:   nil,
		},
		{
			name:    "relaxed after stress",
			chains:  []Chain{{"tE", "nwe"}, {"sOl"}},
			relaxed: true,
			want:    []Hiatus{{At: Boundary{Chain: 0, Syllable: 1}}},
		},
		{
			name:    "relaxed skips unstressed line end",
			chains:  []Chain{{"sOl"}, {"bej"}},
			relaxed: true,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindHiatuses(tt.chains, tt.relaxed)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyHiatuses(t *testing.T) {
	chains := []Chain{{"pja", "dO", "so"}, {"bwEl", "bo"}}
	cands := []Hiatus{
		{At: Boundary{Chain: 0, Syllable: 0}},
		{At: Boundary{Chain: 0, Syllable: 1}},
		{At: Boundary{Chain: 1, Syllable: 0}},
	}

	got := ApplyHiatuses(chains, cands, 2)
	assert.Equal(t, []Chain{{"pi", "a", "dO", "so"}, {"bu", "El", "bo"}}, got)
	assert.Equal(t, []Chain{{"pja", "dO", "so"}, {"bwEl", "bo"}}, chains)

	got = ApplyHiatuses(chains, cands, 1)
	assert.Equal(t, []Chain{{"pi", "a", "dO", "so"}, {"bwEl", "bo"}}, got)
}
