package synthesis

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Bounds on the per-session material carried into a synthesis prompt. The
// hard cap keeps prompt size proportional to the number of sessions selected,
// not to transcript length.
const (
	maxExchanges        = 20
	shortExchangeChars  = 600
	exchangeTruncChars  = 300
	exchangesBlockChars = 2000
)

// Exchange is one transcript message offered to snapshot building.
type Exchange struct {
	Role    string
	Content string
}

// Snapshot is the bounded view of one session embedded into a synthesis
// prompt. Built per request, never persisted.
type Snapshot struct {
	SessionId    uuid.UUID
	Title        string
	Score        float64
	Orientation  string
	Unresolved   string
	KeyExchanges string
	CreatedAt    time.Time
}

// HasUnresolved reports whether the session carries an open question worth
// flagging to the caller.
func (s Snapshot) HasUnresolved() bool {
	return strings.TrimSpace(s.Unresolved) != ""
}

// BuildKeyExchanges condenses a transcript into the capped exchange block:
// the first maxExchanges messages, long monologues filtered out, each kept
// message truncated, and the whole block hard-capped. All budgets count
// runes, not bytes, so multibyte transcripts get the same allowance and
// truncation never splits a rune.
func BuildKeyExchanges(exchanges []Exchange) string {
	var b strings.Builder

	kept := 0
	blockLen := 0
	for _, ex := range exchanges {
		if kept >= maxExchanges {
			break
		}
		content := strings.TrimSpace(ex.Content)
		if content == "" {
			continue
		}
		runes := []rune(content)
		if len(runes) > shortExchangeChars {
			continue
		}
		if len(runes) > exchangeTruncChars {
			content = string(runes[:exchangeTruncChars]) + "..."
		}

		line := fmt.Sprintf("[%s] %s\n", ex.Role, content)
		lineLen := utf8.RuneCountInString(line)
		if blockLen+lineLen > exchangesBlockChars {
			break
		}
		b.WriteString(line)
		blockLen += lineLen
		kept++
	}

	return strings.TrimRight(b.String(), "\n")
}
