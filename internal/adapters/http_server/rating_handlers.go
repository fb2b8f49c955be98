package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travelbook/internal/domain"
)

type submitRatingRequest struct {
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}

type ratingResponse struct {
	ID        int64   `json:"id"`
	VehicleID int64   `json:"vehicleId"`
	UserID    int64   `json:"userId"`
	Rating    int     `json:"rating"`
	Review    *string `json:"review,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type ratingSummaryResponse struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

type ratingsPageResponse struct {
	Items         []ratingResponse `json:"items"`
	AverageRating float64          `json:"averageRating"`
	TotalRatings  int64            `json:"totalRatings"`
	Page          int              `json:"page"`
	PageSize      int              `json:"pageSize"`
}

func toRatingResponse(rt domain.Rating) ratingResponse {
	return ratingResponse{
		ID:        rt.ID,
		VehicleID: rt.VehicleID,
		UserID:    rt.UserID,
		Rating:    rt.Rating,
		Review:    rt.Review,
		CreatedAt: rt.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rt.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func vehicleIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
}

func (h *Handlers) submitRating(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	vehicleID, err := vehicleIDParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "vehicle id must be a number")
		return
	}
	var req submitRatingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt, err := h.Ratings.SubmitRating(r.Context(), sess, vehicleID, req.Rating, req.Review)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponse(rt))
}

func (h *Handlers) getVehicleRatings(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := vehicleIDParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "vehicle id must be a number")
		return
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	pg, err := h.Ratings.GetVehicleRatings(r.Context(), vehicleID, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]ratingResponse, 0, len(pg.Items))
	for _, rt := range pg.Items {
		items = append(items, toRatingResponse(rt))
	}
	writeCacheable(w, r, ratingsPageResponse{
		Items:         items,
		AverageRating: pg.Summary.AverageRating,
		TotalRatings:  pg.Summary.TotalRatings,
		Page:          pg.Page,
		PageSize:      pg.PageSize,
	})
}

func (h *Handlers) getRatingSummary(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := vehicleIDParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "vehicle id must be a number")
		return
	}
	sum, err := h.Ratings.GetRatingSummary(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, ratingSummaryResponse{
		AverageRating: sum.AverageRating,
		TotalRatings:  sum.TotalRatings,
	})
}

// getUserRating returns the caller's own rating, or JSON null when the
// caller has not rated the vehicle yet.
func (h *Handlers) getUserRating(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	vehicleID, err := vehicleIDParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "vehicle id must be a number")
		return
	}
	rt, err := h.Ratings.GetUserRating(r.Context(), sess, vehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponse(rt))
}

func (h *Handlers) deleteRating(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	vehicleID, err := vehicleIDParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "vehicle id must be a number")
		return
	}
	if err := h.Ratings.DeleteRating(r.Context(), sess, vehicleID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
