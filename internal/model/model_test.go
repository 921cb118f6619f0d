package model

import (
	"testing"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "auto", want: PolicyAuto},
		{in: "prompt", want: PolicyPrompt},
		{in: "Prompt", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestRuleIDKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id        RuleID
		want      RuleKind
		wantKnown bool
	}{
		{id: RuleDefault, want: KindNone, wantKnown: true},
		{id: RulePunctuationLineEnd, want: KindReview, wantKnown: true},
		{id: RuleChineseSpacing, want: KindRewrite, wantKnown: true},
		{id: RuleNumberSpacing, want: KindRewrite, wantKnown: true},
		{id: RuleReplaceText, want: KindRewrite, wantKnown: true},
		{id: RuleChinesePunctuation, want: KindRewrite, wantKnown: true},
		{id: "spell_check", want: KindNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()
			got, ok := tt.id.Kind()
			if ok != tt.wantKnown || got != tt.want {
				t.Errorf("Kind() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantKnown)
			}
			if tt.id.Known() != tt.wantKnown {
				t.Errorf("Known() = %v, want %v", tt.id.Known(), tt.wantKnown)
			}
		})
	}
}

func TestRuleKindString(t *testing.T) {
	t.Parallel()

	for kind, want := range map[RuleKind]string{KindNone: "none", KindRewrite: "rewrite", KindReview: "review"} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestRuleFilters(t *testing.T) {
	t.Parallel()

	r := Rule{
		ID:         RuleChineseSpacing,
		Extensions: []string{"xhtml", "svg"},
		Tags:       []string{"p", "h1"},
		SkipFiles:  []string{"colophon.xhtml"},
	}

	t.Run("tags", func(t *testing.T) {
		t.Parallel()
		if !r.HasTag("P") || !r.HasTag("h1") || r.HasTag("div") {
			t.Error("unexpected tag matching")
		}
	})

	t.Run("extensions", func(t *testing.T) {
		t.Parallel()
		if !r.HasExtension(".xhtml") || !r.HasExtension("svg") || r.HasExtension(".opf") {
			t.Error("unexpected extension matching")
		}
	})

	t.Run("skip files", func(t *testing.T) {
		t.Parallel()
		if !r.Skips("colophon.xhtml") || r.Skips("chapter-1.xhtml") {
			t.Error("unexpected skip matching")
		}
	})
}

func TestLangScopeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope LangScope
		lang  string
		want  bool
	}{
		{scope: ScopeZh, lang: "zh", want: true},
		{scope: ScopeZh, lang: "zh-Hans", want: true},
		{scope: ScopeZh, lang: "zh-Hant", want: true},
		{scope: ScopeZh, lang: "en", want: false},
		{scope: ScopeZh, lang: "", want: false},
		{scope: ScopeAny, lang: "zh-Hant", want: true},
		{scope: ScopeHans, lang: "zh-Hans", want: true},
		{scope: ScopeHans, lang: "zh-Hant", want: false},
		{scope: ScopeHans, lang: "zh", want: false},
		{scope: ScopeHant, lang: "zh-Hant", want: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope)+"/"+tt.lang, func(t *testing.T) {
			t.Parallel()
			if got := tt.scope.Matches(tt.lang); got != tt.want {
				t.Errorf("%q.Matches(%q) = %v, want %v", tt.scope, tt.lang, got, tt.want)
			}
		})
	}
}

func TestLangScopeValid(t *testing.T) {
	t.Parallel()

	for _, s := range []LangScope{ScopeZh, ScopeHans, ScopeHant, ScopeAny} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if LangScope("zh-TW").Valid() {
		t.Error("zh-TW should not be a valid scope")
	}
}

func TestIsChinese(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"zh":      true,
		"zh-Hans": true,
		"zh-TW":   true,
		"zhx":     false,
		"en":      false,
		"":        false,
	}
	for lang, want := range tests {
		if got := IsChinese(lang); got != want {
			t.Errorf("IsChinese(%q) = %v, want %v", lang, got, want)
		}
	}
}

func TestDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		wantErr    bool
		wantSource string
		wantTarget string
	}{
		{in: "t2s", wantSource: "zh-Hant", wantTarget: "zh-Hans"},
		{in: "s2t", wantSource: "zh-Hans", wantTarget: "zh-Hant"},
		{in: "T2S", wantErr: true},
		{in: "t2tw", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			d, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if d.SourceLang() != tt.wantSource || d.TargetLang() != tt.wantTarget {
				t.Errorf("%s: source %q target %q", d, d.SourceLang(), d.TargetLang())
			}
		})
	}
}
