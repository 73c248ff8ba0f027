// Package ai implements the prompt templating and response parsing for the
// LLM-backed assistant. It never performs network calls itself, the llm
// package does that.
package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidPersonalities is the fixed vocabulary for assistant personalities.
var ValidPersonalities = []string{"humorous", "sarcastic", "nice", "cute", "direct", "coach"}

// MaxPersonalities is the maximum number of personalities a user can combine.
const MaxPersonalities = 3

var (
	ErrInvalidPersonality   = errors.New("this personality is not supported")
	ErrTooManyPersonalities = fmt.Errorf("at most %d personalities can be combined", MaxPersonalities)
	ErrScoreOutOfRange      = errors.New("scores must be between 0 and 100")
)

// Settings control the tone and strictness of the assistant.
type Settings struct {
	Personalities []string // up to MaxPersonalities entries from ValidPersonalities
	FrugalScore   int      // 0-100, controls strictness of spending advice
	AdviceScore   int      // 0-100, controls analysis vs action orientation
}

// DefaultSettings returns the assistant settings used when the user has not
// configured their own.
func DefaultSettings() Settings {
	return Settings{
		Personalities: []string{"nice"},
		FrugalScore:   55,
		AdviceScore:   60,
	}
}

// Validate checks the settings against the personality vocabulary and the
// score ranges.
func (s Settings) Validate() error {
	if len(s.Personalities) > MaxPersonalities {
		return ErrTooManyPersonalities
	}

	for _, p := range s.Personalities {
		valid := false
		for _, v := range ValidPersonalities {
			if p == v {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: %q", ErrInvalidPersonality, p)
		}
	}

	if s.FrugalScore < 0 || s.FrugalScore > 100 || s.AdviceScore < 0 || s.AdviceScore > 100 {
		return ErrScoreOutOfRange
	}

	return nil
}

// SpendingPattern summarizes the whole-budget spend for prompt building.
type SpendingPattern struct {
	Spent                 decimal.Decimal
	Budget                decimal.Decimal
	Remaining             decimal.Decimal
	PercentUsed           decimal.Decimal
	CompareToLastMonthPct decimal.Decimal
	CompareToAveragePct   decimal.Decimal
	PaceDeltaPct          decimal.Decimal
}

// CategoryData is one category's position for prompt building.
type CategoryData struct {
	Name        string
	Spent       decimal.Decimal
	Planned     decimal.Decimal
	PercentUsed decimal.Decimal
	IsOver      bool
}

// amounts in prompts use grouped digits, e.g. "1,234.56"
var printer = message.NewPrinter(language.English)

func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%.2f", f)
}

func pct(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%.1f", f)
}

func signedPct(d decimal.Decimal) string {
	if d.IsNegative() {
		return pct(d)
	}
	return "+" + pct(d)
}

// daysElapsed returns the number of days of the month that have passed.
// Past and future months count as fully elapsed.
func daysElapsed(month types.Month, now time.Time) int {
	if month.Contains(now) {
		return now.Day()
	}
	return month.Days()
}

// daysRemaining returns the number of days left in the month, zero for months
// other than the current one.
func daysRemaining(month types.Month, now time.Time) int {
	if month.Contains(now) {
		return month.Days() - now.Day()
	}
	return 0
}

// BuildInsightPrompt builds the prompt for generating insight cards from
// spending data. The clock is passed in explicitly so the output is a pure
// function of its arguments.
func BuildInsightPrompt(month types.Month, now time.Time, spending SpendingPattern, topCategory *CategoryData, categories []CategoryData) string {
	elapsed := daysElapsed(month, now)
	remaining := daysRemaining(month, now)

	projected := spending.Spent
	if elapsed > 0 {
		projected = spending.Spent.Add(spending.Spent.Div(decimal.NewFromInt(int64(elapsed))).Mul(decimal.NewFromInt(int64(remaining))))
	}
	overage := projected.Sub(spending.Budget)

	pace := "slower"
	if spending.PaceDeltaPct.IsPositive() {
		pace = "faster"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate 4 specific, actionable financial insights based on this budget data for %s:\n\n", month)
	b.WriteString("CURRENT STATUS:\n")
	fmt.Fprintf(&b, "- Total spent: $%s of $%s (%s%%)\n", money(spending.Spent), money(spending.Budget), pct(spending.PercentUsed))
	fmt.Fprintf(&b, "- Remaining: $%s\n", money(spending.Remaining))
	fmt.Fprintf(&b, "- Spending pace: %s%% %s than usual\n", pct(spending.PaceDeltaPct.Abs()), pace)
	fmt.Fprintf(&b, "- Days elapsed: %d days\n", elapsed)
	if overage.IsPositive() {
		fmt.Fprintf(&b, "- If pace continues, will be $%s over budget\n\n", money(overage))
	} else {
		b.WriteString("- If pace continues, will be under budget\n\n")
	}

	if topCategory != nil {
		b.WriteString("TOP SPENDING CATEGORY:\n")
		fmt.Fprintf(&b, "- %s: $%s of $%s planned (%s%%)\n\n", topCategory.Name, money(topCategory.Spent), money(topCategory.Planned), pct(topCategory.PercentUsed))
	}

	b.WriteString("MONTH-TO-MONTH COMPARISON:\n")
	fmt.Fprintf(&b, "- vs last month: %s%%\n", signedPct(spending.CompareToLastMonthPct))
	fmt.Fprintf(&b, "- vs 3-month average: %s%%\n\n", signedPct(spending.CompareToAveragePct))

	if len(categories) > 0 {
		b.WriteString("ALL CATEGORIES:\n")
		for _, c := range categories {
			fmt.Fprintf(&b, "- %s: $%s of $%s (%s%%)\n", c.Name, money(c.Spent), money(c.Planned), pct(c.PercentUsed))
		}
		b.WriteString("\n")
	}

	b.WriteString("Generate exactly 4 insights in JSON format:\n")
	b.WriteString("[\n")
	b.WriteString(`  { "kind": "alert" | "positive", "title": "...", "body": "...", "action": "Action: ..." },` + "\n")
	b.WriteString("]\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("1. One insight should focus on spending pace and budget projection\n")
	b.WriteString("2. One should compare current spending to previous month\n")
	b.WriteString("3. One should highlight the biggest spending category\n")
	b.WriteString("4. One should be either about category trends, savings potential, or spending patterns\n")
	b.WriteString("- Each insight should be 1 sentence for title, 1-2 for body, 1 for action\n")
	b.WriteString(`- Use "alert" for concerning trends, "positive" for good behavior or opportunities` + "\n")
	b.WriteString("- Actions should be specific and achievable within days (not months)\n")
	b.WriteString("- Be encouraging but direct about budget issues\n")
	b.WriteString("- Return ONLY valid JSON, no other text")

	return b.String()
}

// BuildSystemPrompt builds the assistant system prompt from the personality
// settings.
func BuildSystemPrompt(settings Settings) string {
	tone := "neutral and helpful"
	if len(settings.Personalities) > 0 {
		tone = strings.Join(settings.Personalities, ", ")
	}

	var frugal string
	switch {
	case settings.FrugalScore >= 70:
		frugal = "Be strict and firm about spending limits. Flag discretionary spending and emphasize budget discipline."
	case settings.FrugalScore >= 40:
		frugal = "Provide balanced guidance on spending. Permit reasonable discretionary spending within budgets."
	default:
		frugal = "Be generous in your interpretation of budgets. Emphasize enjoying life while staying roughly on track."
	}

	var advice string
	switch {
	case settings.AdviceScore >= 60:
		advice = "Focus on concrete actions and specific steps the user should take immediately. Be directive and prescriptive."
	case settings.AdviceScore >= 40:
		advice = "Provide a balanced mix of analysis and actionable advice. Explain the situation and suggest next steps."
	default:
		advice = "Focus on thorough analysis and diagnosis of spending patterns. Explain the 'why' before suggesting actions."
	}

	var modifiers string
	if has(settings.Personalities, "sarcastic") || has(settings.Personalities, "direct") {
		modifiers = "Use direct language, avoid sugar-coating. Be straightforward about spending issues."
	} else if has(settings.Personalities, "nice") || has(settings.Personalities, "cute") {
		modifiers = "Be warm and encouraging. Use supportive language even when discussing budget concerns."
	}
	if has(settings.Personalities, "humorous") {
		modifiers += "Use light humor and wit where appropriate to keep the tone engaging."
	}

	var b strings.Builder
	b.WriteString("You are a personal financial assistant for SpendIQ, helping users manage their budgets and spending.\n\n")
	fmt.Fprintf(&b, "Tone: %s\n", tone)
	if modifiers != "" {
		fmt.Fprintf(&b, "Personality modifiers: %s\n", modifiers)
	}
	b.WriteString("\nStrictness & spending guidance:\n")
	b.WriteString(frugal)
	b.WriteString("\n\nResponse style:\n")
	b.WriteString(advice)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Keep responses concise and actionable (2-3 sentences typically)\n")
	b.WriteString("- Reference specific budget categories and amounts when relevant\n")
	b.WriteString("- Use the user's currency preference in responses\n")
	b.WriteString("- Be empathetic but direct about overspending\n")
	b.WriteString("- Celebrate when users are on track with their budgets\n")
	b.WriteString("- Focus on the current month's budget unless asked about trends")

	return b.String()
}

func has(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
