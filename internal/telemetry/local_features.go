package telemetry

import (
	"context"

	"github.com/petasbytes/todo-agent/internal/metrics"
)

// LocalFeatures records size features of the user's input. The text itself
// is never written.
func (r *Recorder) LocalFeatures(ctx context.Context, user string) {
	if r == nil {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := metrics.CountFeatures(user)
	r.Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": "1",
		"user":             f,
	})
}
