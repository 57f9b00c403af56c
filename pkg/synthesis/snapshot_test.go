package synthesis

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
)

func TestBuildKeyExchangesCaps(t *testing.T) {
	// 40 short messages: only the first 20 may be kept.
	var exchanges []Exchange
	for i := 0; i < 40; i++ {
		exchanges = append(exchanges, Exchange{Role: "user", Content: fmt.Sprintf("message %d", i)})
	}

	block := BuildKeyExchanges(exchanges)
	lines := strings.Split(block, "\n")
	if len(lines) > 20 {
		t.Errorf("kept %d exchanges, want at most 20", len(lines))
	}
	if !strings.Contains(block, "message 0") {
		t.Errorf("first message missing from block")
	}
	if strings.Contains(block, "message 25") {
		t.Errorf("message beyond the exchange cap leaked into block")
	}
}

func TestBuildKeyExchangesFiltersAndTruncates(t *testing.T) {
	long := strings.Repeat("x", 5000)
	medium := strings.Repeat("y", 400)

	block := BuildKeyExchanges([]Exchange{
		{Role: "assistant", Content: long},   // filtered: not a short exchange
		{Role: "user", Content: medium},      // kept but truncated
		{Role: "user", Content: "short one"}, // kept verbatim
		{Role: "user", Content: "   "},       // filtered: empty
	})

	if strings.Contains(block, long) {
		t.Error("long monologue should have been filtered out")
	}
	if !strings.Contains(block, "...") {
		t.Error("medium message should have been truncated with ellipsis")
	}
	if !strings.Contains(block, "short one") {
		t.Error("short message missing")
	}
	for _, line := range strings.Split(block, "\n") {
		if len(line) > exchangeTruncChars+20 { // role prefix + ellipsis slack
			t.Errorf("line exceeds per-message truncation: %d chars", len(line))
		}
	}
}

func TestBuildKeyExchangesHardCap(t *testing.T) {
	// 20 messages close to the per-message limit would exceed the block cap;
	// the block must stay under it.
	var exchanges []Exchange
	for i := 0; i < 20; i++ {
		exchanges = append(exchanges, Exchange{Role: "user", Content: strings.Repeat("z", 299)})
	}

	block := BuildKeyExchanges(exchanges)
	if len(block) > exchangesBlockChars {
		t.Errorf("block is %d chars, cap is %d", len(block), exchangesBlockChars)
	}
	if block == "" {
		t.Error("block should not be empty")
	}
}

func TestBuildKeyExchangesTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte rune straddling the truncation point must not be split
	// into a dangling partial byte.
	content := strings.Repeat("a", 299) + "é" + strings.Repeat("b", 100)

	block := BuildKeyExchanges([]Exchange{{Role: "user", Content: content}})
	if !utf8.ValidString(block) {
		t.Fatalf("block contains invalid UTF-8: %q", block[len(block)-12:])
	}
	if !strings.HasSuffix(block, "é...") {
		t.Errorf("block should end with the complete rune plus ellipsis, got %q", block[len(block)-12:])
	}

	// Budgets count runes, so multibyte text gets the same allowance as
	// ASCII: 400 CJK runes is still a short exchange, truncated at 300.
	cjk := strings.Repeat("語", 400)
	block = BuildKeyExchanges([]Exchange{{Role: "user", Content: cjk}})
	if block == "" {
		t.Fatal("400-rune message should pass the short-exchange filter")
	}
	kept := utf8.RuneCountInString(block) - utf8.RuneCountInString("[user] ") - utf8.RuneCountInString("...")
	if kept != exchangeTruncChars {
		t.Errorf("kept %d runes of content, want %d", kept, exchangeTruncChars)
	}
}

func TestBuildPromptStructure(t *testing.T) {
	snapshots := []Snapshot{
		{
			SessionId:    uuid.New(),
			Title:        "Soil chemistry",
			Score:        0.82,
			Orientation:  "An inquiry into soil pH.",
			Unresolved:   "Is pH causal?",
			KeyExchanges: "[user] What about nitrogen?",
		},
		{
			SessionId: uuid.New(),
			Title:     "Composting",
			Score:     0.5,
		},
	}

	prompt := BuildPrompt("How does soil health work?", snapshots)

	for _, want := range []string{
		"How does soil health work?",
		`Session 1: "Soil chemistry" (relevance 82%)`,
		`Session 2: "Composting" (relevance 50%)`,
		"Orientation: An inquiry into soil pH.",
		"Unresolved: Is pH causal?",
		"[user] What about nitrogen?",
		"Attribute every claim",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSnapshotHasUnresolved(t *testing.T) {
	if (Snapshot{Unresolved: "  "}).HasUnresolved() {
		t.Error("whitespace-only unresolved should report false")
	}
	if !(Snapshot{Unresolved: "open question"}).HasUnresolved() {
		t.Error("non-empty unresolved should report true")
	}
}
