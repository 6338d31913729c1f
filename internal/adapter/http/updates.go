package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
)

type weeklyUpdateBody struct {
	Streams    int64   `json:"streams"`
	ImportedOn *string `json:"imported_on,omitempty"` // RFC3339, defaults to now
	Notes      string  `json:"notes"`
}

type weeklyUpdateView struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Streams    int64     `json:"streams"`
	ImportedOn time.Time `json:"imported_on"`
	Notes      string    `json:"notes,omitempty"`
}

func viewUpdate(u *domain.WeeklyUpdate) weeklyUpdateView {
	return weeklyUpdateView{
		ID:         u.ID,
		CampaignID: u.CampaignID,
		Streams:    u.Streams,
		ImportedOn: u.ImportedOn,
		Notes:      u.Notes,
	}
}

// handleRecordUpdate appends an observed stream count to a campaign's
// performance log. The log is append-only; the planned allocation stays
// untouched.
func (h *Handler) handleRecordUpdate(w http.ResponseWriter, r *http.Request) {
	var body weeklyUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req := port.WeeklyUpdateReq{
		CampaignID: chi.URLParam(r, "id"),
		Streams:    body.Streams,
		Notes:      body.Notes,
	}
	if body.ImportedOn != nil {
		ts, err := time.Parse(time.RFC3339, *body.ImportedOn)
		if err != nil {
			http.Error(w, "invalid imported_on", http.StatusBadRequest)
			return
		}
		req.ImportedOn = ts
	}
	upd, err := h.svc.RecordWeeklyUpdate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, viewUpdate(upd))
}

func (h *Handler) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.ListWeeklyUpdates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]weeklyUpdateView, len(updates))
	for i := range updates {
		views[i] = viewUpdate(&updates[i])
	}
	h.writeJSON(w, http.StatusOK, views)
}
