package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategories)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}

	// Monthly detail
	{
		r.OPTIONS("/:id/monthly", OptionsCategoryMonthly)
		r.GET("/:id/monthly", GetCategoryMonthly)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Category{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/monthly [options]
func OptionsCategoryMonthly(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Category{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create categories
// @Description	Creates new categories
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryCreateResponse
// @Failure		400			{object}	CategoryCreateResponse
// @Failure		404			{object}	CategoryCreateResponse
// @Failure		500			{object}	CategoryCreateResponse
// @Param			categories	body		[]CategoryEditable	true	"Categories"
// @Router			/v1/categories [post]
func CreateCategories(c *gin.Context) {
	var editables []CategoryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CategoryCreateResponse{}

	for _, editable := range editables {
		category := editable.model()

		err = models.DB.Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCategory(c, category)
		r.Data = append(r.Data, CategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get categories
// @Description	Returns a list of categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the category archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Category returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Categories to return. Defaults to 50."
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Categories and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.Category
	err = q.Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Category, 0)
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Failure		500	{object}	CategoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Update an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	var data CategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	r := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &r})
}

// @Summary		Delete category
// @Description	Deletes a category
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Monthly category detail
// @Description	Returns the spend of a category in a month with its transactions and a daily breakdown
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryMonthlyResponse
// @Failure		400	{object}	CategoryMonthlyResponse
// @Failure		404	{object}	CategoryMonthlyResponse
// @Failure		500	{object}	CategoryMonthlyResponse
// @Param			id				path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month			query	string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Param			comparePrevious	query	bool	false	"Include the comparison with the previous month"
// @Router			/v1/categories/{id}/monthly [get]
func GetCategoryMonthly(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryMonthlyResponse{
			Error: &s,
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryMonthlyResponse{
			Error: &s,
		})
		return
	}

	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryMonthlyResponse{
			Error: &s,
		})
		return
	}

	var query CategoryMonthlyQuery
	_ = c.Bind(&query)

	month := types.MonthOf(time.Now().In(settings.Location()))
	if query.Month != "" {
		month, err = types.ParseMonth(query.Month)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CategoryMonthlyResponse{
				Error: &s,
			})
			return
		}
	}

	data, err := categoryMonthly(c, category, month, settings, query.ComparePrevious)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryMonthlyResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryMonthlyResponse{Data: &data})
}

// categoryTransactions returns the debit transactions of the category in the month.
func categoryTransactions(category models.Category, month types.Month, includePending bool) ([]models.Transaction, error) {
	q := models.DB.
		Where("category_id = ?", category.ID).
		Where("direction = ?", models.DirectionDebit).
		Where("date >= date(?)", month.PeriodStart()).
		Where("date <= date(?)", month.PeriodEnd()).
		Order("date DESC, created_at DESC")

	if !includePending {
		q = q.Where("pending = ?", false)
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

func categoryMonthly(c *gin.Context, category models.Category, month types.Month, settings models.Settings, comparePrevious bool) (CategoryMonthly, error) {
	transactions, err := categoryTransactions(category, month, settings.IncludePending)
	if err != nil {
		return CategoryMonthly{}, err
	}

	spent := decimal.Zero
	dailyTotals := make(map[string]decimal.Decimal)
	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		spent = spent.Add(transaction.Amount)
		day := transaction.Date.Format("2006-01-02")
		dailyTotals[day] = dailyTotals[day].Add(transaction.Amount)
		data = append(data, newTransaction(c, transaction))
	}

	daily := make([]DailySpend, 0, len(dailyTotals))
	for day := month.PeriodStart(); !day.After(month.PeriodEnd()); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if total, ok := dailyTotals[key]; ok {
			daily = append(daily, DailySpend{Date: key, Spent: total})
		}
	}

	planned, err := plannedForCategory(category.ID, month)
	if err != nil {
		return CategoryMonthly{}, err
	}

	line := report.EnrichLine(report.BudgetLine{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Planned:      planned,
	}, map[uuid.UUID]decimal.Decimal{category.ID: spent}, settings.Thresholds())

	monthly := CategoryMonthly{
		Category:     newCategory(c, category),
		Month:        month,
		Planned:      planned,
		Spent:        spent,
		Remaining:    line.Remaining,
		ProgressPct:  line.ProgressPct,
		Status:       line.Status,
		Transactions: data,
		Daily:        daily,
	}

	if comparePrevious {
		previous := month.AddDate(0, -1)
		previousTransactions, err := categoryTransactions(category, previous, settings.IncludePending)
		if err != nil {
			return CategoryMonthly{}, err
		}

		previousSpent := decimal.Zero
		for _, transaction := range previousTransactions {
			previousSpent = previousSpent.Add(transaction.Amount)
		}

		deltaPct := decimal.Zero
		if previousSpent.IsPositive() {
			deltaPct = spent.Sub(previousSpent).Div(previousSpent).Mul(decimal.NewFromInt(100)).Round(2)
		}

		monthly.Previous = &PreviousMonthComparison{
			Month:    previous,
			Spent:    previousSpent,
			DeltaPct: deltaPct,
		}
	}

	return monthly, nil
}

// plannedForCategory returns the planned amount for the category in the
// month's budget, zero when the month has no budget or no line for the
// category.
func plannedForCategory(categoryID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	var budget models.Budget
	err := models.DB.First(&budget, "month = ?", month).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	var line models.BudgetLine
	err = models.DB.First(&line, "budget_id = ? AND category_id = ?", budget.ID, categoryID).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return line.PlannedAmount, nil
}
