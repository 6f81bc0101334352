// Package constants provides shared constants for the grain-loss application.
package constants

// DateLayout is the calendar date format accepted from forms and config files.
const DateLayout = "2006-01-02"

// CompactDateLayout is the date format used in exported file names.
const CompactDateLayout = "20060102"

// Calculation constants
const (
	// DaysPerMonth is the fixed month length used to convert day counts to
	// storage months.
	DaysPerMonth = 30

	// DecimalPlaces is the number of decimals quantities are rounded to.
	DecimalPlaces = 2

	// PercentDecimalPlaces is the number of decimals allowed on moisture and
	// impurity inputs.
	PercentDecimalPlaces = 1

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Report types. Each has its own duration rounding policy and export title.
const (
	ReportTypeLoss       = "loss"
	ReportTypeSurplus    = "surplus"
	ReportTypeProcessing = "processing"
)

// Report titles used for export file names.
const (
	LossReportTitle       = "粮食保管损耗报告单"
	SurplusReportTitle    = "粮食溢余报告单"
	ProcessingReportTitle = "入库过程损耗报告单"
)

// Display placeholders and labels.
const (
	// EmptyCell is shown for result cells that have not been computed.
	EmptyCell = "--"

	// UnknownLocation replaces a missing location number in file names.
	UnknownLocation = "未知货位"

	// ExportExtension is the extension of exported report images.
	ExportExtension = ".jpg"

	YesLabel = "是"
	NoLabel  = "否"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultRegion names the rate table used when none is requested.
	DefaultRegion = "default"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
