// Package report assembles calculator results and form values into the
// printable report: header metadata, display rows, the completeness check
// run before export, and the export file name.
package report

import (
	"strings"
)

// Header is the metadata printed above every report.
type Header struct {
	UnitTitle        string `json:"unitTitle"`
	UnitHeader       string `json:"unitHeader"`
	ReportDate       string `json:"reportDate"`
	LocationNumber   string `json:"locationNumber"`
	InWarehouseType  string `json:"inWarehouseType,omitempty"`
	OutWarehouseType string `json:"outWarehouseType,omitempty"`
}

// Storage conditions derived from the warehouse type.
const (
	ConditionStandard    = "标准仓房"
	ConditionNonStandard = "非标准仓房"
	ConditionOpenAir     = "露天"
)

// StorageCondition maps a warehouse type to its storage condition.
func StorageCondition(warehouseType string) string {
	switch strings.TrimSpace(warehouseType) {
	case "罩棚仓":
		return ConditionNonStandard
	case "罩棚仓(露天)", "大堆(露天)":
		return ConditionOpenAir
	default:
		return ConditionStandard
	}
}

// Unit returns the reporting unit, preferring the title over the header.
func (h Header) Unit() string {
	if unit := strings.TrimSpace(h.UnitTitle); unit != "" {
		return unit
	}
	return strings.TrimSpace(h.UnitHeader)
}

func (h Header) missing() []string {
	var missing []string
	if h.Unit() == "" {
		missing = append(missing, "填报单位")
	}
	if isBlank(h.ReportDate) {
		missing = append(missing, "填报时间")
	}
	if isBlank(h.LocationNumber) {
		missing = append(missing, "货位号")
	}
	return missing
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
