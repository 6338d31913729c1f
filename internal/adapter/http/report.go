package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type reportView struct {
	CampaignID       string           `json:"campaign_id"`
	Status           string           `json:"status"`
	StreamGoal       int64            `json:"stream_goal"`
	ProjectedStreams int64            `json:"projected_streams"`
	ActualStreams    int64            `json:"actual_streams"`
	RemainingStreams int64            `json:"remaining_streams"`
	ProgressPct      int              `json:"progress_percentage"`
	CommissionCents  int64            `json:"commission_cents"`
	TotalCostCents   int64            `json:"total_cost_cents"`
	CostPerStream    float64          `json:"cost_per_stream"`
	ROIPct           float64          `json:"roi_percentage"`
	VendorCosts      map[string]int64 `json:"vendor_costs,omitempty"`
}

// handleGetReport returns the derived metrics for one campaign: progress
// against the stream goal from the weekly-update log, commission on the
// budget, vendor cost and ROI.
func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reportView{
		CampaignID:       rep.CampaignID,
		Status:           rep.Status,
		StreamGoal:       rep.StreamGoal,
		ProjectedStreams: rep.ProjectedStreams,
		ActualStreams:    rep.ActualStreams,
		RemainingStreams: rep.RemainingStreams,
		ProgressPct:      rep.ProgressPct,
		CommissionCents:  rep.CommissionCents,
		TotalCostCents:   rep.TotalCostCents,
		CostPerStream:    rep.CostPerStream,
		ROIPct:           rep.ROIPct,
		VendorCosts:      rep.VendorCosts,
	})
}
