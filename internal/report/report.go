package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/grain-loss/internal/calculator"
	"github.com/iwvelando/grain-loss/internal/form"
	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/format"
)

// Row is one labelled result cell.
type Row struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Warning bool   `json:"warning,omitempty"`
}

// Field is one labelled form input.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is a rendered report of any type.
type Report struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Header   Header        `json:"header"`
	Fields   []Field       `json:"fields"`
	Rows     []Row         `json:"rows"`
	Computed bool          `json:"computed"`
	Warning  bool          `json:"warning"`
	Notices  []form.Notice `json:"notices,omitempty"`

	InCondition  string `json:"inCondition,omitempty"`
	OutCondition string `json:"outCondition,omitempty"`

	computeHint string
}

// NewLossReport builds a storage loss report. A nil result renders every
// result cell as a placeholder.
func NewLossReport(h Header, f form.LossForm, res *calculator.LossResult, notices []form.Notice) *Report {
	r := &Report{
		ID:           uuid.NewString(),
		Type:         constants.ReportTypeLoss,
		Title:        constants.LossReportTitle,
		Header:       h,
		Notices:      notices,
		InCondition:  StorageCondition(h.InWarehouseType),
		OutCondition: StorageCondition(h.OutWarehouseType),
		computeHint:  `请先点击"计算损耗"按钮进行计算`,
		Fields: []Field{
			{"品种", f.Commodity},
			{"入库时间", f.InDate},
			{"出库时间", f.OutDate},
			{"入库水分%", f.InMoisture},
			{"出库水分%", f.OutMoisture},
			{"入库杂质%", f.InImpurity},
			{"出库杂质%", f.OutImpurity},
			{"入库数量", f.InQuantity},
			{"出库数量", f.OutQuantity},
		},
	}

	if res == nil {
		r.Rows = placeholders("储存时间(月)", "自然损耗", "水分减量", "杂质减量", "损耗合计", "实际损耗", "实际损耗率", "超耗数量", "是否超耗")
		return r
	}

	warn := res.IsOverLoss
	r.Computed = true
	r.Warning = warn
	r.Rows = []Row{
		{Label: "储存时间(月)", Value: format.Months(res.StorageMonths)},
		{Label: "自然损耗", Value: format.Quantity(res.NaturalLoss)},
		{Label: "水分减量", Value: format.Quantity(res.MoistureLoss)},
		{Label: "杂质减量", Value: format.Quantity(res.ImpurityLoss)},
		{Label: "损耗合计", Value: format.Quantity(res.TotalLoss)},
		{Label: "实际损耗", Value: format.Quantity(res.ActualLoss), Warning: warn},
		{Label: "实际损耗率", Value: format.Percent(res.ActualLossRate), Warning: warn},
		{Label: "超耗数量", Value: format.Quantity(res.DisplayOverLoss()), Warning: warn},
		{Label: "是否超耗", Value: format.YesNo(warn), Warning: warn},
	}
	return r
}

// NewSurplusReport builds an outbound surplus/shortage report.
func NewSurplusReport(h Header, f form.SurplusForm, res *calculator.SurplusResult) *Report {
	r := &Report{
		ID:           uuid.NewString(),
		Type:         constants.ReportTypeSurplus,
		Title:        constants.SurplusReportTitle,
		Header:       h,
		InCondition:  StorageCondition(h.InWarehouseType),
		OutCondition: StorageCondition(h.OutWarehouseType),
		computeHint:  `请先点击"计算"按钮进行计算`,
		Fields: []Field{
			{"入库时间", f.InDate},
			{"出库时间", f.OutDate},
			{"保管账数量", f.StorageQuantity},
			{"出库数量", f.OutQuantity},
		},
	}

	if res == nil {
		r.Rows = placeholders("储存时间(月)", "损溢数量", "损溢率")
		return r
	}

	r.Computed = true
	r.Rows = []Row{
		{Label: "储存时间(月)", Value: format.Months(res.StorageMonths)},
		{Label: "损溢数量", Value: format.Quantity(res.Quantity)},
		{Label: "损溢率", Value: format.Percent(res.Rate)},
	}
	return r
}

// NewProcessingReport builds a purchase/processing loss report.
func NewProcessingReport(h Header, f form.ProcessingForm, res *calculator.ProcessingResult) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		Type:        constants.ReportTypeProcessing,
		Title:       constants.ProcessingReportTitle,
		Header:      h,
		computeHint: `请先点击"计算"按钮`,
		Fields: []Field{
			{"入库时间", f.BeforeDate},
			{"入库水分%", f.BeforeMoisture},
			{"入库杂质%", f.BeforeImpurity},
			{"入库数量", f.BeforeQuantity},
			{"平仓时间", f.AfterDate},
			{"平仓水分%", f.AfterMoisture},
			{"平仓杂质%", f.AfterImpurity},
			{"平仓数量", f.AfterQuantity},
		},
	}

	if res == nil {
		r.Rows = placeholders("损耗数量", "损耗率")
		return r
	}

	r.Computed = true
	r.Warning = res.NegativeLoss
	r.Rows = []Row{
		{Label: "损耗数量", Value: format.Quantity(res.LossQuantity), Warning: res.NegativeLoss},
		{Label: "损耗率", Value: format.Percent(res.LossRate), Warning: res.NegativeLoss},
	}
	if res.NegativeLoss {
		r.Notices = append(r.Notices, form.Notice{
			Field:   "afterQuantity",
			Message: `"平仓数量"大于"入库数量"，这将导致负损耗。请检查输入是否正确。`,
		})
	}
	return r
}

// MissingFields lists the labels of everything that must be filled in
// before the report can be exported, in form order.
func (r *Report) MissingFields() []string {
	missing := r.Header.missing()
	for _, f := range r.Fields {
		if isBlank(f.Value) {
			missing = append(missing, f.Label)
		}
	}
	if !r.Computed {
		missing = append(missing, r.computeHint)
	}
	return missing
}

// Complete reports whether the report can be exported.
func (r *Report) Complete() bool {
	return len(r.MissingFields()) == 0
}

// FileName returns the export file name. The report date falls back to now
// when the header has none.
func (r *Report) FileName(now time.Time) string {
	location := strings.TrimSpace(r.Header.LocationNumber)
	if location == "" {
		location = constants.UnknownLocation
	}
	date := strings.ReplaceAll(strings.TrimSpace(r.Header.ReportDate), "-", "")
	if date == "" {
		date = now.Format(constants.CompactDateLayout)
	}
	return r.Title + "_" + location + "_" + date + constants.ExportExtension
}

func placeholders(labels ...string) []Row {
	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{Label: label, Value: constants.EmptyCell}
	}
	return rows
}
