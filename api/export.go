package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 报表导出处理器
type ExportHandler struct {
	reports *ReportsHandler
}

// NewExportHandler 创建报表导出处理器
func NewExportHandler(reports *ReportsHandler) *ExportHandler {
	return &ExportHandler{reports: reports}
}

// reportRows 把报表整形成表格行（表头 + 数据行），CSV 与 Excel 共用
func (h *ExportHandler) reportRows(reportType string) (headers []string, rows [][]interface{}, err error) {
	switch reportType {
	case ReportUserGrowth:
		report, err := h.reports.buildUserGrowthReport()
		if err != nil {
			return nil, nil, err
		}
		headers = []string{"月份", "注册用户数"}
		for _, b := range report.UserGrowth {
			rows = append(rows, []interface{}{b.Month, b.Count})
		}
		rows = append(rows, []interface{}{"总计", report.TotalUsers})
		rows = append(rows, []interface{}{"最近环比增长(%)", report.LatestGrowth})

	case ReportFinancialOverview:
		report, err := h.reports.buildFinancialOverviewReport()
		if err != nil {
			return nil, nil, err
		}
		headers = []string{"指标", "数值"}
		rows = append(rows,
			[]interface{}{"平台总收入", fmt.Sprintf("%.2f", report.TotalIncome)},
			[]interface{}{"平台总支出", fmt.Sprintf("%.2f", report.TotalExpenses)},
			[]interface{}{"净现金流", fmt.Sprintf("%.2f", report.NetCashFlow)},
			[]interface{}{"平均储蓄率(%)", fmt.Sprintf("%.1f", report.AverageSavingsRate)},
			[]interface{}{"储蓄目标达成用户占比(%)", fmt.Sprintf("%.1f", report.SavingsGoalSuccessRate)},
		)
		for i, cat := range report.TopExpenseCategories {
			rows = append(rows, []interface{}{
				fmt.Sprintf("高频支出类别 #%d", i+1),
				fmt.Sprintf("%s (%d笔)", cat.Category, cat.Count),
			})
		}

	case ReportSavingsPerformance:
		report, err := h.reports.buildSavingsPerformanceReport()
		if err != nil {
			return nil, nil, err
		}
		headers = []string{"指标", "数值"}
		rows = append(rows,
			[]interface{}{"储蓄目标总数", report.TotalGoals},
			[]interface{}{"已达成目标数", report.CompletedGoals},
			[]interface{}{"进行中目标数", report.ActiveGoals},
			[]interface{}{"目标完成率(%)", fmt.Sprintf("%.1f", report.CompletionRate)},
			[]interface{}{"进行中目标占比(%)", fmt.Sprintf("%.1f", report.ActiveGoalsPercentage)},
			[]interface{}{"达成用户占比(%)", fmt.Sprintf("%.1f", report.SuccessRate)},
		)

	default:
		return nil, nil, fmt.Errorf("未知的报表类型: %s", reportType)
	}
	return headers, rows, nil
}

// DownloadCSV 下载报表 CSV
// @Summary 下载报表 CSV
// @Description 报表类型：user-growth / financial-overview / savings-performance
// @Tags 数据报表
// @Produce text/csv
// @Security BearerAuth
// @Param type path string true "报表类型" Enums(user-growth,financial-overview,savings-performance)
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "未知的报表类型"
// @Router /admin/reports/{type}/csv [get]
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	reportType := c.Param("type")

	headers, rows, err := h.reportRows(reportType)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "生成报表失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = fmt.Sprint(cell)
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", reportType, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DownloadExcel 下载报表 Excel
// @Summary 下载报表 Excel
// @Description 报表类型：user-growth / financial-overview / savings-performance
// @Tags 数据报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param type path string true "报表类型" Enums(user-growth,financial-overview,savings-performance)
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "未知的报表类型"
// @Router /admin/reports/{type}/excel [get]
func (h *ExportHandler) DownloadExcel(c *gin.Context) {
	reportType := c.Param("type")

	headers, rows, err := h.reportRows(reportType)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "生成报表失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "报表"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 28)
	}

	// 写入表头
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for i, row := range rows {
		rowNum := i + 2
		for j, cell := range row {
			ref := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			f.SetCellValue(sheetName, ref, cell)
			f.SetCellStyle(sheetName, ref, ref, dataStyle)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", reportType, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
