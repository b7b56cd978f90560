package core

import "context"

// Context keys for report options
type contextKey string

const chartProgressKey contextKey = "chartProgress"

// withChartProgress sets the callback invoked after each rendered chart
func withChartProgress(ctx context.Context, onDone func()) context.Context {
	return context.WithValue(ctx, chartProgressKey, onDone)
}

// chartProgress returns the chart callback from context, or nil
func chartProgress(ctx context.Context) func() {
	val := ctx.Value(chartProgressKey)
	if val == nil {
		return nil // default: render silently
	}
	onDone, _ := val.(func())
	return onDone
}
