package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const CurrencySymbol = "£"

type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Messages holds the push notification texts. Placeholders are written {name}.
type Messages struct {
	PayoffDigest  MessageText `json:"payoff_digest"`
	PayoffStalled MessageText `json:"payoff_stalled"`
	DebtFree      MessageText `json:"debt_free"`
}

// Load reads the notifications JSON file. Every message needs a title and a body.
func Load(path string) (*Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	var m Messages
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}

	for name, text := range map[string]MessageText{
		"payoff_digest":  m.PayoffDigest,
		"payoff_stalled": m.PayoffStalled,
		"debt_free":      m.DebtFree,
	} {
		if text.Title == "" || text.Body == "" {
			return nil, fmt.Errorf("messages file %s: %s needs a title and a body", path, name)
		}
	}
	return &m, nil
}

// Render substitutes {key} placeholders. Unknown placeholders are left as written.
func (t MessageText) Render(vars map[string]string) MessageText {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}
	r := strings.NewReplacer(pairs...)
	return MessageText{Title: r.Replace(t.Title), Body: r.Replace(t.Body)}
}

// Money formats an amount as £1,234.50.
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + CurrencySymbol + humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}
