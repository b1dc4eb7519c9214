package rank

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases", "Burabay LAKE", []string{"burabay", "lake"}},
		{"collapses whitespace", "  pine \t forest\n", []string{"pine", "forest"}},
		{"keeps punctuation attached", "lake, forest.", []string{"lake,", "forest."}},
		{"empty", "", nil},
		{"whitespace only", "   \n\t", nil},
		{"cyrillic", "Озеро Боровое", []string{"озеро", "боровое"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenSet_Deduplicates(t *testing.T) {
	set := tokenSet("lake lake Lake forest")
	if len(set) != 2 {
		t.Errorf("expected 2 unique tokens, got %d", len(set))
	}
	if _, ok := set["lake"]; !ok {
		t.Error("expected token 'lake' in set")
	}
}
