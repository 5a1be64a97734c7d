package usecase

import (
	"testing"

	"github.com/gearcheck/backend/internal/domain"
)

func TestExtractSimpleAssignments(t *testing.T) {
	extractor := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want []domain.Reference
	}{
		{
			name: "double quoted value",
			text: `main = "Aeneas"`,
			want: []domain.Reference{{Name: "Aeneas"}},
		},
		{
			name: "single quoted value",
			text: `head = 'Carmine Mask'`,
			want: []domain.Reference{{Name: "Carmine Mask"}},
		},
		{
			name: "no spaces around equals",
			text: `main="Aeneas"`,
			want: []domain.Reference{{Name: "Aeneas"}},
		},
		{
			name: "apostrophe inside double quotes",
			text: `sub = "Genbu's Shield"`,
			want: []domain.Reference{{Name: "Genbu's Shield"}},
		},
		{
			name: "name key suppressed",
			text: `name = "Aeneas"`,
			want: nil,
		},
		{
			name: "name key suppressed case insensitively",
			text: `Name = "Aeneas"`,
			want: nil,
		},
		{
			name: "multiple assignments",
			text: "main = \"Aeneas\"\nsub = 'Blurred Knife +1'",
			want: []domain.Reference{
				{Name: "Aeneas"},
				{Name: "Blurred Knife +1"},
			},
		},
		{
			name: "unterminated string ignored",
			text: `main = "Aeneas`,
			want: nil,
		},
		{
			name: "empty string ignored",
			text: `main = ""`,
			want: nil,
		},
		{
			name: "no patterns at all",
			text: "-- just a comment\nlocal x = 5",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.text).Values()
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Extract(%q)[%d] = %v, want %v", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractRejectsNonItemValues(t *testing.T) {
	extractor := NewExtractor(nil)

	texts := []string{
		`mode = "Normal"`,
		`state = "acc"`,
		`flag = "true"`,
		`slot = "main"`,
		`slot = "left_ring"`,
		`fn = "get_sets()"`,
		`level = "99"`,
		`x = "a"`,
	}
	for _, text := range texts {
		if got := extractor.Extract(text); got.Len() != 0 {
			t.Errorf("Extract(%q) = %v, want nothing", text, got.Values())
		}
	}
}

func TestExtractAugmentedBlocks(t *testing.T) {
	extractor := NewExtractor(nil)

	t.Run("block with name and augments", func(t *testing.T) {
		text := `head = { name = "Herculean Helm", augments = { "Accuracy+20", "DEX+10" } }`
		refs := extractor.Extract(text).Values()
		if len(refs) != 1 {
			t.Fatalf("Extract() = %v, want one reference", refs)
		}
		if refs[0].Name != "Herculean Helm" {
			t.Errorf("Name = %q", refs[0].Name)
		}
		if !refs[0].HasAugments() {
			t.Fatal("reference should carry augment text")
		}
		want := domain.NormalizeAugments("Accuracy+20; DEX+10")
		if !refs[0].NormalizedAugments().Equal(want) {
			t.Errorf("augments = %v, want %v", refs[0].NormalizedAugments().Values(), want.Values())
		}
	})

	t.Run("apostrophe in double quoted name", func(t *testing.T) {
		text := `sub = { name = "Genbu's Shield", augments = { "Path: A" } }`
		refs := extractor.Extract(text).Values()
		if len(refs) != 1 || refs[0].Name != "Genbu's Shield" {
			t.Fatalf("Extract() = %v, want Genbu's Shield", refs)
		}
	})

	t.Run("keywords case insensitive", func(t *testing.T) {
		text := `head = { Name = "Herculean Helm", Augments = { "Accuracy+20" } }`
		refs := extractor.Extract(text).Values()
		if len(refs) != 1 {
			t.Fatalf("Extract() = %v, want one reference", refs)
		}
	})

	t.Run("block without augments field falls through", func(t *testing.T) {
		// Not an augmented block, but the inner name assignment is
		// suppressed too, so nothing is extracted.
		text := `head = { name = "Herculean Helm" }`
		if got := extractor.Extract(text); got.Len() != 0 {
			t.Errorf("Extract() = %v, want nothing", got.Values())
		}
	})

	t.Run("same item in block and plain form stays distinct", func(t *testing.T) {
		text := `
			head = { name = "Herculean Helm", augments = { "Accuracy+20" } }
			head_tp = "Herculean Helm"
		`
		if got := extractor.Extract(text).Len(); got != 2 {
			t.Errorf("Len() = %d, want 2 distinct references", got)
		}
	})

	t.Run("duplicate blocks dedupe", func(t *testing.T) {
		text := `
			head = { name = "Herculean Helm", augments = { "Accuracy+20" } }
			head_acc = { name = "Herculean Helm", augments = { "Accuracy+20" } }
		`
		if got := extractor.Extract(text).Len(); got != 1 {
			t.Errorf("Len() = %d, want 1", got)
		}
	})
}

func TestExtractAll(t *testing.T) {
	extractor := NewExtractor(nil)

	refs := extractor.ExtractAll([]string{
		`main = "Aeneas"`,
		`main = "aeneas"`,
		`sub = "Genbu's Shield"`,
	})
	if got := refs.Len(); got != 2 {
		t.Errorf("ExtractAll() Len() = %d, want 2", got)
	}
}

func TestExtractGearswapSetBlock(t *testing.T) {
	extractor := NewExtractor(nil)

	text := `
sets.engaged = {
    main = "Aeneas",
    sub = { name = "Gleti's Knife", augments = { "Path: A" } },
    ammo = "Coiste Bodhar",
    head = empty,
    mode = "Normal",
}
`
	refs := extractor.Extract(text)
	wantNames := map[string]bool{
		"Aeneas":        true,
		"Gleti's Knife": true,
		"Coiste Bodhar": true,
	}
	if refs.Len() != len(wantNames) {
		t.Fatalf("Extract() = %v, want %d references", refs.Values(), len(wantNames))
	}
	for _, ref := range refs.Values() {
		if !wantNames[ref.Name] {
			t.Errorf("unexpected reference %q", ref.Name)
		}
	}
}

func TestIsValidItemName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Aeneas", true},
		{"Blurred Knife +1", true},
		{"Genbu's Shield", true},
		{"a", false},
		{"", false},
		{"none", false},
		{"Empty", false},
		{"NORMAL", false},
		{"main", false},
		{"right_ring", false},
		{"get_sets()", false},
		{"12345", false},
		{"+1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidItemName(tt.name); got != tt.want {
				t.Errorf("isValidItemName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
