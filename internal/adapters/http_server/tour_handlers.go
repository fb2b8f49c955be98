package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travelbook/internal/app"
	"travelbook/internal/domain"
)

type createTourRequestRequest struct {
	ArrivalDate   dateOnly `json:"arrivalDate"`
	DepartureDate dateOnly `json:"departureDate"`
	GroupSize     int      `json:"groupSize"`
	Interests     []string `json:"interests,omitempty"`
	BudgetMin     *float64 `json:"budgetMin,omitempty"`
	BudgetMax     *float64 `json:"budgetMax,omitempty"`
	Phone         string   `json:"phone"`
	Whatsapp      string   `json:"whatsapp"`
	Notes         *string  `json:"notes,omitempty"`
}

type tourRequestResponse struct {
	ID            int64    `json:"id"`
	RequesterID   int64    `json:"requesterId"`
	ArrivalDate   dateOnly `json:"arrivalDate"`
	DepartureDate dateOnly `json:"departureDate"`
	GroupSize     int      `json:"groupSize"`
	Interests     []string `json:"interests,omitempty"`
	BudgetMin     *float64 `json:"budgetMin,omitempty"`
	BudgetMax     *float64 `json:"budgetMax,omitempty"`
	Phone         string   `json:"phone"`
	Whatsapp      string   `json:"whatsapp"`
	Notes         *string  `json:"notes,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

func toTourRequestResponse(tr domain.TourRequest) tourRequestResponse {
	return tourRequestResponse{
		ID:            tr.ID,
		RequesterID:   tr.RequesterID,
		ArrivalDate:   dateOnly{tr.ArrivalDate},
		DepartureDate: dateOnly{tr.DepartureDate},
		GroupSize:     tr.GroupSize,
		Interests:     tr.Interests,
		BudgetMin:     tr.BudgetMin,
		BudgetMax:     tr.BudgetMax,
		Phone:         tr.Phone,
		Whatsapp:      tr.Whatsapp,
		Notes:         tr.Notes,
		Status:        string(tr.Status),
		CreatedAt:     tr.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     tr.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTourRequestResponses(trs []domain.TourRequest) []tourRequestResponse {
	out := make([]tourRequestResponse, 0, len(trs))
	for _, tr := range trs {
		out = append(out, toTourRequestResponse(tr))
	}
	return out
}

func (h *Handlers) createTourRequest(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var req createTourRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	tr, err := h.Tours.CreateRequest(r.Context(), sess, app.CreateTourRequestInput{
		ArrivalDate:   req.ArrivalDate.Time,
		DepartureDate: req.DepartureDate.Time,
		GroupSize:     req.GroupSize,
		Interests:     req.Interests,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		Phone:         req.Phone,
		Whatsapp:      req.Whatsapp,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTourRequestResponse(tr))
}

// listPendingTourRequests is the admin inbox: unresolved requests only.
func (h *Handlers) listPendingTourRequests(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	trs, err := h.Tours.ListPending(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTourRequestResponses(trs))
}

// listAllTourRequests returns every request, resolved ones included.
func (h *Handlers) listAllTourRequests(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	trs, err := h.Tours.ListAll(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTourRequestResponses(trs))
}

func (h *Handlers) updateTourRequestStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	tr, err := h.Tours.UpdateStatus(r.Context(), sess, id, domain.TourStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTourRequestResponse(tr))
}
