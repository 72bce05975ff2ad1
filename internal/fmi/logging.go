package fmi

// Category names one logging stream. Models may declare their own
// categories; these two are always available.
type Category string

const (
	// CategoryLogAll receives every non-trace message, including errors.
	CategoryLogAll Category = "logAll"
	// CategoryTrace receives one message per API entry point.
	CategoryTrace Category = "trace"
)

// LogCallback receives messages that pass the per-category enable map.
// It mirrors the fmi3LogMessage callback signature.
type LogCallback func(status Status, category Category, message string)

// DiscardLog is a LogCallback that drops everything.
func DiscardLog(Status, Category, string) {}
