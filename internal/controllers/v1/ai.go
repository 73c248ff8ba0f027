package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/ai"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/llm"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
)

// LLM is the language model client used by the assistant endpoints. It is
// set once at startup.
var LLM llm.Client

// chatHistoryContext is how many past messages are sent to the model.
const chatHistoryContext = 10

// chatHistoryKeep is how many messages are kept when pruning.
const chatHistoryKeep = 50

// RegisterAIRoutes registers the routes for the assistant with
// the RouterGroup that is passed.
func RegisterAIRoutes(r *gin.RouterGroup) {
	// Chat
	{
		r.OPTIONS("/chat", OptionsChat)
		r.POST("/chat", CreateChatMessage)
	}

	// History
	{
		r.OPTIONS("/history", OptionsChatHistory)
		r.GET("/history", GetChatHistory)
		r.DELETE("/history", DeleteChatHistory)
	}

	// Generated insight cards
	{
		r.OPTIONS("/insights", OptionsAIInsights)
		r.GET("/insights", GetAIInsights)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assistant
// @Success		204
// @Router			/v1/ai/chat [options]
func OptionsChat(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assistant
// @Success		204
// @Router			/v1/ai/history [options]
func OptionsChatHistory(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assistant
// @Success		204
// @Router			/v1/ai/insights [options]
func OptionsAIInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// budgetContext renders the current month's position as plain text for the
// model.
func budgetContext(month types.Month, settings models.Settings) (string, error) {
	lines, spends, err := monthData(month, settings)
	if err != nil {
		return "", err
	}

	payload := report.BuildMonthlyHome(month, lines, spends, nil, settings.CurrencyCode, settings.Thresholds())

	var b strings.Builder
	fmt.Fprintf(&b, "Budget data for %s (%s):\n", month, settings.CurrencyCode)
	fmt.Fprintf(&b, "- Total: %s planned, %s spent, %s remaining (%s%% used)\n",
		payload.Summary.BudgetTotal, payload.Summary.SpentTotal, payload.Summary.Remaining, payload.Summary.SpentPct)
	for _, line := range payload.Lines {
		fmt.Fprintf(&b, "- %s: %s of %s (%s%%, %s)\n",
			line.CategoryName, line.Spent, line.Planned, line.ProgressPct, line.Status)
	}

	return b.String(), nil
}

// @Summary		Chat with the assistant
// @Description	Sends a message to the assistant. Both the message and the reply are stored in the history.
// @Tags			Assistant
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChatResponse
// @Failure		400		{object}	ChatResponse
// @Failure		502		{object}	ChatResponse
// @Failure		500		{object}	ChatResponse
// @Param			message	body		ChatEditable	true	"Message"
// @Router			/v1/ai/chat [post]
func CreateChatMessage(c *gin.Context) {
	var editable ChatEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	if strings.TrimSpace(editable.Message) == "" {
		e := errChatMessageEmpty.Error()
		c.JSON(http.StatusBadRequest, ChatResponse{
			Error: &e,
		})
		return
	}

	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	month := types.MonthOf(time.Now().In(settings.Location()))
	context, err := budgetContext(month, settings)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	history, err := models.ChatHistory(models.DB, chatHistoryContext)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: ai.BuildSystemPrompt(settings.AI())})
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: context})
	for _, entry := range history {
		messages = append(messages, llm.Message{Role: entry.Role, Content: entry.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: editable.Message})

	content, err := LLM.Chat(c.Request.Context(), messages, llm.DefaultOptions())
	if err != nil {
		e := errAIUnavailable.Error()
		c.JSON(status(errAIUnavailable), ChatResponse{
			Error: &e,
		})
		return
	}

	userMessage := models.ChatMessage{Role: models.ChatRoleUser, Content: editable.Message}
	err = models.DB.Create(&userMessage).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	reply := models.ChatMessage{Role: models.ChatRoleAssistant, Content: content}
	err = models.DB.Create(&reply).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	err = models.PruneChatHistory(models.DB, chatHistoryKeep)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	data := newChatMessage(reply)
	c.JSON(http.StatusOK, ChatResponse{Data: &data})
}

// @Summary		Chat history
// @Description	Returns the conversation with the assistant in chronological order
// @Tags			Assistant
// @Produce		json
// @Success		200		{object}	ChatHistoryResponse
// @Failure		500		{object}	ChatHistoryResponse
// @Param			limit	query		int	false	"Maximum number of messages to return. Defaults to all."
// @Router			/v1/ai/history [get]
func GetChatHistory(c *gin.Context) {
	var query ChatHistoryQuery
	_ = c.Bind(&query)

	history, err := models.ChatHistory(models.DB, query.Limit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatHistoryResponse{
			Error: &e,
		})
		return
	}

	data := make([]ChatMessage, 0, len(history))
	for _, entry := range history {
		data = append(data, newChatMessage(entry))
	}

	c.JSON(http.StatusOK, ChatHistoryResponse{Data: data})
}

// @Summary		Delete chat history
// @Description	Deletes the whole conversation with the assistant
// @Tags			Assistant
// @Success		204
// @Failure		500	{object}	httpError
// @Router			/v1/ai/history [delete]
func DeleteChatHistory(c *gin.Context) {
	err := models.DB.Unscoped().Where("1 = 1").Delete(&models.ChatMessage{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// spendingPattern builds the prompt input for a month, comparing against the
// previous month and the 3-month average.
func spendingPattern(month types.Month, now time.Time, settings models.Settings) (ai.SpendingPattern, *ai.CategoryData, []ai.CategoryData, error) {
	lines, spends, err := monthData(month, settings)
	if err != nil {
		return ai.SpendingPattern{}, nil, nil, err
	}

	payload := report.BuildMonthlyHome(month, lines, spends, nil, settings.CurrencyCode, settings.Thresholds())

	categories := make([]ai.CategoryData, 0, len(payload.Lines))
	var top *ai.CategoryData
	for _, line := range payload.Lines {
		data := ai.CategoryData{
			Name:        line.CategoryName,
			Spent:       line.Spent,
			Planned:     line.Planned,
			PercentUsed: line.ProgressPct,
			IsOver:      line.Status == report.StatusOver,
		}
		categories = append(categories, data)

		if top == nil || data.Spent.GreaterThan(top.Spent) {
			clone := data
			top = &clone
		}
	}

	// Total debit spend of a month, for the month-to-month comparisons
	monthTotal := func(m types.Month) (decimal.Decimal, error) {
		spends, err := models.SpentByCategory(models.DB, m, settings.IncludePending)
		if err != nil {
			return decimal.Zero, err
		}

		total := decimal.Zero
		for _, spend := range spends {
			total = total.Add(spend.Spent)
		}
		return total, nil
	}

	hundred := decimal.NewFromInt(100)

	lastMonthSpent, err := monthTotal(month.AddDate(0, -1))
	if err != nil {
		return ai.SpendingPattern{}, nil, nil, err
	}

	compareToLastMonth := decimal.Zero
	if lastMonthSpent.IsPositive() {
		compareToLastMonth = payload.Summary.SpentTotal.Sub(lastMonthSpent).Div(lastMonthSpent).Mul(hundred).Round(1)
	}

	average := decimal.Zero
	for i := 1; i <= 3; i++ {
		total, err := monthTotal(month.AddDate(0, -i))
		if err != nil {
			return ai.SpendingPattern{}, nil, nil, err
		}
		average = average.Add(total)
	}
	average = average.Div(decimal.NewFromInt(3))

	compareToAverage := decimal.Zero
	if average.IsPositive() {
		compareToAverage = payload.Summary.SpentTotal.Sub(average).Div(average).Mul(hundred).Round(1)
	}

	// Pace: how far ahead or behind an even daily spend the user is
	elapsed := month.Days()
	if month.Contains(now) {
		elapsed = now.Day()
	}
	expectedPct := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(month.Days()))).Mul(hundred)
	paceDelta := payload.Summary.SpentPct.Sub(expectedPct).Round(1)

	pattern := ai.SpendingPattern{
		Spent:                 payload.Summary.SpentTotal,
		Budget:                payload.Summary.BudgetTotal,
		Remaining:             payload.Summary.Remaining,
		PercentUsed:           payload.Summary.SpentPct,
		CompareToLastMonthPct: compareToLastMonth,
		CompareToAveragePct:   compareToAverage,
		PaceDeltaPct:          paceDelta,
	}

	return pattern, top, categories, nil
}

// @Summary		Generated insight cards
// @Description	Asks the language model for insight cards about the month. An unparseable model response yields an empty list.
// @Tags			Assistant
// @Produce		json
// @Success		200		{object}	AIInsightListResponse
// @Failure		400		{object}	AIInsightListResponse
// @Failure		502		{object}	AIInsightListResponse
// @Failure		500		{object}	AIInsightListResponse
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/ai/insights [get]
func GetAIInsights(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AIInsightListResponse{
			Error: &e,
		})
		return
	}

	now := time.Now().In(settings.Location())
	month, err := monthFromQuery(c, types.MonthOf(now))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AIInsightListResponse{
			Error: &e,
		})
		return
	}

	pattern, top, categories, err := spendingPattern(month, now, settings)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AIInsightListResponse{
			Error: &e,
		})
		return
	}

	prompt := ai.BuildInsightPrompt(month, now, pattern, top, categories)

	content, err := LLM.Chat(c.Request.Context(), []llm.Message{
		{Role: llm.RoleSystem, Content: ai.BuildSystemPrompt(settings.AI())},
		{Role: llm.RoleUser, Content: prompt},
	}, llm.DefaultOptions())
	if err != nil {
		e := errAIUnavailable.Error()
		c.JSON(status(errAIUnavailable), AIInsightListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, AIInsightListResponse{
		Data: ai.ParseInsights(content),
	})
}
