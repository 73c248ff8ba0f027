package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
)

// RegisterReportRoutes registers the routes for the monthly PDF report with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", OptionsMonthlyReport)
	r.GET("/monthly", GetMonthlyReport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/monthly [options]
func OptionsMonthlyReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly PDF report
// @Description	Renders the monthly budget overview as a PDF document
// @Tags			Reports
// @Produce		application/pdf
// @Success		200		{file}		file
// @Failure		400		{object}	HomeResponse
// @Failure		500		{object}	HomeResponse
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/reports/monthly [get]
func GetMonthlyReport(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c, types.MonthOf(time.Now().In(settings.Location())))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	lines, spends, err := monthData(month, settings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	lastSyncAt, err := models.LastTransactionSync(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	payload := report.BuildMonthlyHome(month, lines, spends, lastSyncAt, settings.CurrencyCode, settings.Thresholds())

	var buf bytes.Buffer
	err = renderMonthlyReport(&buf, payload)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, HomeResponse{
			Error: &s,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="spendiq-%s.pdf"`, month.String()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// renderMonthlyReport draws the monthly payload into a single page PDF.
func renderMonthlyReport(buf *bytes.Buffer, payload report.MonthlyHomePayload) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Monthly report %s", payload.Month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, fmt.Sprintf("Monthly report %s", payload.Month), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s, all amounts in %s", payload.PeriodStart, payload.PeriodEnd, payload.Currency), "", 1, "L", false, 0, "")
	if payload.Sync.LastTransactionSyncAt != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Transactions last synced %s", payload.Sync.LastTransactionSyncAt.Format(time.RFC1123)), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(47, 7, fmt.Sprintf("Budget %s", payload.Summary.BudgetTotal), "1", 0, "L", false, 0, "")
	pdf.CellFormat(47, 7, fmt.Sprintf("Spent %s", payload.Summary.SpentTotal), "1", 0, "L", false, 0, "")
	pdf.CellFormat(47, 7, fmt.Sprintf("Remaining %s", payload.Summary.Remaining), "1", 0, "L", false, 0, "")
	pdf.CellFormat(47, 7, fmt.Sprintf("Used %s%%", payload.Summary.SpentPct), "1", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Categories", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(70, 7, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Planned", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Spent", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Remaining", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range payload.Lines {
		pdf.CellFormat(70, 7, line.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, line.Planned.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, line.Spent.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, line.Remaining.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, string(line.Status), "1", 1, "L", false, 0, "")
	}

	if len(payload.Lines) == 0 {
		pdf.CellFormat(188, 7, "No budget for this month", "1", 1, "C", false, 0, "")
	}

	return pdf.Output(buf)
}
