package guard

import (
	"strings"
	"testing"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/random"
)

func newTestGuard(t *testing.T, rng random.Source) *Guard {
	t.Helper()
	g, err := NewGuard(lexicon.Default(), rng)
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}
	return g
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		blocked bool
		cat     Category
	}{
		{"identity", "who am i", true, CategoryIdentity},
		{"identity-padded", "   WHO AM I?  ", true, CategoryIdentity},
		{"identity-records", "show my records please", true, CategoryIdentity},
		{"greeting", "how are you", true, CategoryGreeting},
		{"greeting-wins-overlap", "how are you? who are you?", true, CategoryGreeting},
		{"topical", "what is the house allowance for a farm manager?", false, CategoryNone},
		{"topical-leave", "sick leave policy", false, CategoryNone},
	}
	g := newTestGuard(t, random.Zero)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Evaluate(tt.query)
			if d.Blocked != tt.blocked {
				t.Errorf("blocked: got %v, want %v", d.Blocked, tt.blocked)
			}
			if d.Category != tt.cat {
				t.Errorf("category: got %q, want %q", d.Category, tt.cat)
			}
			if d.Blocked && d.Response == "" {
				t.Error("blocked decision must carry a response")
			}
			if !d.Blocked && d.Response != "" {
				t.Errorf("unexpected response %q", d.Response)
			}
		})
	}
}

func TestIdentityResponseShape(t *testing.T) {
	lex := lexicon.Default()
	d := newTestGuard(t, random.Zero).Evaluate("who am i")

	want := lex.Guard.BlockedResponses[0] +
		"\n\nHere's what I can help you with:\n" +
		"• " + lex.Guard.Suggestions[0] + "\n" +
		"• " + lex.Guard.Suggestions[1] + "\n" +
		"• " + lex.Guard.Suggestions[2] +
		"\n\nPlease ask about any of these topics, and I'll be happy to assist you!"
	if d.Response != want {
		t.Fatalf("response mismatch:\ngot:  %q\nwant: %q", d.Response, want)
	}
}

func TestIdentitySuggestionsDistinct(t *testing.T) {
	g := newTestGuard(t, random.New(3))
	for i := 0; i < 50; i++ {
		d := g.Evaluate("tell me about myself")
		var bullets []string
		for _, line := range strings.Split(d.Response, "\n") {
			if strings.HasPrefix(line, "• ") {
				bullets = append(bullets, line)
			}
		}
		if len(bullets) != 3 {
			t.Fatalf("expected 3 suggestions, got %d", len(bullets))
		}
		if bullets[0] == bullets[1] || bullets[1] == bullets[2] || bullets[0] == bullets[2] {
			t.Fatalf("suggestions repeated: %v", bullets)
		}
	}
}

func TestGreetingResponseFromPool(t *testing.T) {
	lex := lexicon.Default()
	d := newTestGuard(t, random.Zero).Evaluate("what's up")
	if d.Response != lex.Guard.GreetingResponses[0] {
		t.Fatalf("got %q", d.Response)
	}
}

func TestNewGuardRejectsBadPattern(t *testing.T) {
	lex := lexicon.Default()
	lex.Guard.IdentityPatterns = []string{"(unclosed"}
	if _, err := NewGuard(lex, random.Zero); err == nil {
		t.Fatal("expected compile error")
	}
}
