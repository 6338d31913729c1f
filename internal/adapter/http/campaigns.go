package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
	"streamlane/internal/metrics"
)

type createCampaignBody struct {
	Name         string   `json:"name"`
	StreamGoal   int64    `json:"stream_goal"`
	DurationDays int      `json:"duration_days"`
	SubGenre     string   `json:"sub_genre"`
	MusicGenres  []string `json:"music_genres"`
	BudgetCents  int64    `json:"budget_cents"`
	StartDate    *string  `json:"start_date,omitempty"` // RFC3339
}

type campaignView struct {
	ID                string                             `json:"id"`
	Name              string                             `json:"name"`
	Status            string                             `json:"status"`
	StreamGoal        int64                              `json:"stream_goal"`
	DurationDays      int                                `json:"duration_days"`
	SubGenre          string                             `json:"sub_genre,omitempty"`
	MusicGenres       []string                           `json:"music_genres,omitempty"`
	BudgetCents       int64                              `json:"budget_cents"`
	SelectedPlaylists []string                           `json:"selected_playlists,omitempty"`
	VendorAllocations map[string]domain.VendorAllocation `json:"vendor_allocations,omitempty"`
	Totals            campaignTotals                     `json:"totals"`
	StartDate         *time.Time                         `json:"start_date,omitempty"`
	CreatedAt         time.Time                          `json:"created_at"`
	UpdatedAt         time.Time                          `json:"updated_at"`
}

type campaignTotals struct {
	ProjectedStreams int64 `json:"projected_streams"`
}

func viewCampaign(c *domain.Campaign) campaignView {
	return campaignView{
		ID:                c.ID,
		Name:              c.Name,
		Status:            c.Status,
		StreamGoal:        c.StreamGoal,
		DurationDays:      c.DurationDays,
		SubGenre:          c.SubGenre,
		MusicGenres:       c.MusicGenres,
		BudgetCents:       c.BudgetCents,
		SelectedPlaylists: c.SelectedPlaylists,
		VendorAllocations: c.VendorAllocations,
		Totals:            campaignTotals{ProjectedStreams: c.ProjectedStreams},
		StartDate:         c.StartDate,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// handleCreateCampaign stores a new draft campaign. Validation failures
// produce HTTP 400; on success the created record is returned with 201.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body createCampaignBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req := port.CreateCampaignReq{
		Name:         body.Name,
		StreamGoal:   body.StreamGoal,
		DurationDays: body.DurationDays,
		SubGenre:     body.SubGenre,
		MusicGenres:  body.MusicGenres,
		BudgetCents:  body.BudgetCents,
	}
	if body.StartDate != nil {
		ts, err := time.Parse(time.RFC3339, *body.StartDate)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		req.StartDate = &ts
	}
	c, err := h.svc.CreateCampaign(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, viewCampaign(c))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]campaignView, len(campaigns))
	for i := range campaigns {
		views[i] = viewCampaign(&campaigns[i])
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewCampaign(c))
}

type buildBody struct {
	VendorCaps map[string]int64 `json:"vendor_caps"`
}

type buildView struct {
	CampaignID        string                             `json:"campaign_id"`
	Allocations       []allocationEntryView              `json:"allocations"`
	VendorAllocations map[string]domain.VendorAllocation `json:"vendor_allocations"`
	Total             int64                              `json:"total"`
	Shortfall         int64                              `json:"shortfall"`
}

type allocationEntryView struct {
	PlaylistID string `json:"playlist_id"`
	VendorID   string `json:"vendor_id"`
	Allocation int64  `json:"allocation"`
}

// handleBuildCampaign runs the allocation engine for a campaign. A plan that
// cannot reach the goal is still HTTP 200; the shortfall comes back in the
// body so the operator can loosen genre filters or vendor caps and rebuild.
// An empty body means no per-vendor caps.
func (h *Handler) handleBuildCampaign(w http.ResponseWriter, r *http.Request) {
	var body buildBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}
	resp, err := h.svc.BuildCampaign(r.Context(), chi.URLParam(r, "id"), body.VendorCaps)
	if err != nil {
		h.writeError(w, err)
		return
	}

	metrics.RecordBuildShortfall(resp.Plan.Total+resp.Plan.Shortfall, resp.Plan.Shortfall)

	view := buildView{
		CampaignID:        resp.CampaignID,
		Allocations:       make([]allocationEntryView, len(resp.Plan.Entries)),
		VendorAllocations: resp.VendorAllocations,
		Total:             resp.Plan.Total,
		Shortfall:         resp.Plan.Shortfall,
	}
	for i, e := range resp.Plan.Entries {
		view.Allocations[i] = allocationEntryView{PlaylistID: e.PlaylistID, VendorID: e.VendorID, Allocation: e.Streams}
	}
	h.writeJSON(w, http.StatusOK, view)
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
