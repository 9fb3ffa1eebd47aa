// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionRecord
	Summary  Summary
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return Report{
		Sessions: sessions,
		Summary:  BuildSummary(sessions),
	}, nil
}

// Render writes the full report sized to the given terminal width.
func Render(w io.Writer, report Report, width int) error {
	if err := RenderSummary(w, report.Summary); err != nil {
		return err
	}
	if err := RenderTrends(w, report.Sessions, width); err != nil {
		return err
	}
	return RenderHistory(w, report.Sessions)
}
