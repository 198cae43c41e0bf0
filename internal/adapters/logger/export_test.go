package logger

var (
	CollectMessages  = collectMessages
	FormatErrorChain = formatErrorChain
)
