package s3g

// InfoLogFunc and DebugLogFunc are hook points for the calling application
// to receive driver logging. Both default to nil (silent).
var (
	InfoLogFunc  func(format string, a ...any)
	DebugLogFunc func(format string, a ...any)
)

func logf(format string, a ...any) {
	if InfoLogFunc != nil {
		InfoLogFunc(format, a...)
	}
}

func debugf(format string, a ...any) {
	if DebugLogFunc != nil {
		DebugLogFunc(format, a...)
	}
}
