package report

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/grain-loss/internal/calculator"
	"github.com/iwvelando/grain-loss/internal/form"
	"github.com/iwvelando/grain-loss/internal/ratetable"
)

func completeHeader() Header {
	return Header{
		UnitTitle:        "某粮库",
		ReportDate:       "2025-03-01",
		LocationNumber:   "P-07",
		InWarehouseType:  "平房仓",
		OutWarehouseType: "罩棚仓",
	}
}

func maizeForm() form.LossForm {
	return form.LossForm{
		Commodity:   "玉米",
		InDate:      "2025-01-01",
		OutDate:     "2025-02-15",
		InMoisture:  "14.0",
		OutMoisture: "12.5",
		InImpurity:  "1.0",
		OutImpurity: "0.8",
		InQuantity:  "1000",
		OutQuantity: "950",
	}
}

func computeMaize(t *testing.T) *calculator.LossResult {
	t.Helper()
	in, _, err := maizeForm().Parse(form.DefaultThresholds())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := calculator.ComputeLoss(in, ratetable.Default())
	if err != nil {
		t.Fatalf("ComputeLoss() error = %v", err)
	}
	return &res
}

func TestStorageCondition(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"平房仓", ConditionStandard},
		{"", ConditionStandard},
		{"罩棚仓", ConditionNonStandard},
		{"罩棚仓(露天)", ConditionOpenAir},
		{"大堆(露天)", ConditionOpenAir},
	}

	for _, tt := range tests {
		if result := StorageCondition(tt.input); result != tt.expected {
			t.Errorf("StorageCondition(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestNewLossReportRows(t *testing.T) {
	r := NewLossReport(completeHeader(), maizeForm(), computeMaize(t), nil)

	expected := map[string]string{
		"储存时间(月)": "2",
		"自然损耗":    "1.00",
		"水分减量":    "17.14",
		"杂质减量":    "2.02",
		"损耗合计":    "20.16",
		"实际损耗":    "50.00",
		"实际损耗率":   "5.00%",
		"超耗数量":    "29.84",
		"是否超耗":    "是",
	}
	if len(r.Rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(r.Rows))
	}
	for _, row := range r.Rows {
		if want := expected[row.Label]; row.Value != want {
			t.Errorf("%s = %q, expected %q", row.Label, row.Value, want)
		}
	}
	if !r.Warning {
		t.Error("expected report warning for over-loss")
	}
	if r.Rows[0].Warning || !r.Rows[5].Warning || !r.Rows[8].Warning {
		t.Error("warning should mark only actual loss, rate, over-loss and status cells")
	}
	if r.InCondition != ConditionStandard || r.OutCondition != ConditionNonStandard {
		t.Errorf("unexpected conditions %q / %q", r.InCondition, r.OutCondition)
	}
	if r.ID == "" {
		t.Error("expected report ID")
	}
	if !r.Complete() {
		t.Errorf("expected complete report, missing %v", r.MissingFields())
	}
}

func TestNewLossReportPlaceholders(t *testing.T) {
	r := NewLossReport(completeHeader(), maizeForm(), nil, nil)

	for _, row := range r.Rows {
		if row.Value != "--" {
			t.Errorf("%s = %q, expected placeholder", row.Label, row.Value)
		}
	}
	missing := r.MissingFields()
	if len(missing) != 1 || !strings.Contains(missing[0], "计算损耗") {
		t.Errorf("expected only the compute hint, got %v", missing)
	}
}

func TestMissingFields(t *testing.T) {
	f := maizeForm()
	f.OutMoisture = " "
	f.InQuantity = ""

	r := NewLossReport(Header{UnitHeader: "", ReportDate: ""}, f, computeMaize(t), nil)
	missing := r.MissingFields()

	expected := []string{"填报单位", "填报时间", "货位号", "出库水分%", "入库数量"}
	if len(missing) != len(expected) {
		t.Fatalf("MissingFields() = %v, expected %v", missing, expected)
	}
	for i := range expected {
		if missing[i] != expected[i] {
			t.Errorf("MissingFields()[%d] = %q, expected %q", i, missing[i], expected[i])
		}
	}
}

func TestHeaderUnitFallback(t *testing.T) {
	h := Header{UnitHeader: " 二号库 "}
	if h.Unit() != "二号库" {
		t.Errorf("Unit() = %q", h.Unit())
	}
	h.UnitTitle = "一号库"
	if h.Unit() != "一号库" {
		t.Errorf("Unit() = %q", h.Unit())
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)

	r := NewLossReport(completeHeader(), maizeForm(), nil, nil)
	if got := r.FileName(now); got != "粮食保管损耗报告单_P-07_20250301.jpg" {
		t.Errorf("FileName() = %q", got)
	}

	r = NewSurplusReport(Header{}, form.SurplusForm{}, nil)
	if got := r.FileName(now); got != "粮食溢余报告单_未知货位_20250609.jpg" {
		t.Errorf("FileName() = %q", got)
	}

	r = NewProcessingReport(Header{LocationNumber: "C-3", ReportDate: "2025-05-20"}, form.ProcessingForm{}, nil)
	if got := r.FileName(now); got != "入库过程损耗报告单_C-3_20250520.jpg" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestNewSurplusReport(t *testing.T) {
	f := form.SurplusForm{InDate: "2025-01-01", OutDate: "2025-02-15", StorageQuantity: "500", OutQuantity: "520"}
	in, err := f.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := calculator.ComputeSurplus(in)
	if err != nil {
		t.Fatalf("ComputeSurplus() error = %v", err)
	}

	r := NewSurplusReport(completeHeader(), f, &res)
	values := []string{"2", "-20.00", "-4.00%"}
	for i, want := range values {
		if r.Rows[i].Value != want {
			t.Errorf("%s = %q, expected %q", r.Rows[i].Label, r.Rows[i].Value, want)
		}
	}
	if r.Warning {
		t.Error("surplus reports never warn")
	}
	if !r.Complete() {
		t.Errorf("expected complete report, missing %v", r.MissingFields())
	}
}

func TestNewProcessingReport(t *testing.T) {
	f := form.ProcessingForm{
		BeforeDate:     "2025-01-01",
		AfterDate:      "2025-01-20",
		BeforeMoisture: "14.0",
		AfterMoisture:  "13.5",
		BeforeImpurity: "1.0",
		AfterImpurity:  "0.9",
		BeforeQuantity: "500",
		AfterQuantity:  "510",
	}
	in, err := f.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := calculator.ComputeProcessingLoss(in)
	if err != nil {
		t.Fatalf("ComputeProcessingLoss() error = %v", err)
	}

	r := NewProcessingReport(completeHeader(), f, &res)
	if r.Rows[0].Value != "-10.00" || r.Rows[1].Value != "-2.00%" {
		t.Errorf("unexpected rows %+v", r.Rows)
	}
	if !r.Warning || len(r.Notices) != 1 {
		t.Errorf("expected negative-loss warning and notice, got %v / %v", r.Warning, r.Notices)
	}
	if !r.Complete() {
		t.Errorf("expected complete report, missing %v", r.MissingFields())
	}
	if got := r.FileName(time.Now()); !strings.HasPrefix(got, "入库过程损耗报告单_") {
		t.Errorf("FileName() = %q", got)
	}
}
