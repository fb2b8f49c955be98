package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travelbook/internal/app"
	"travelbook/internal/domain"
)

type createBookingRequest struct {
	SubjectID      int64    `json:"subjectId"`
	StartDate      dateOnly `json:"startDate"`
	EndDate        dateOnly `json:"endDate"`
	Rooms          *int     `json:"rooms,omitempty"`
	PickupLocation *string  `json:"pickupLocation,omitempty"`
	Phone          string   `json:"phone"`
	Whatsapp       string   `json:"whatsapp"`
}

type bookingResponse struct {
	ID             int64    `json:"id"`
	SubjectType    string   `json:"subjectType"`
	SubjectID      int64    `json:"subjectId"`
	RequesterID    int64    `json:"requesterId"`
	StartDate      dateOnly `json:"startDate"`
	EndDate        dateOnly `json:"endDate"`
	Rooms          *int     `json:"rooms,omitempty"`
	PickupLocation *string  `json:"pickupLocation,omitempty"`
	Phone          string   `json:"phone"`
	Whatsapp       string   `json:"whatsapp"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		SubjectType:    string(b.SubjectType),
		SubjectID:      b.SubjectID,
		RequesterID:    b.RequesterID,
		StartDate:      dateOnly{b.StartDate},
		EndDate:        dateOnly{b.EndDate},
		Rooms:          b.Rooms,
		PickupLocation: b.PickupLocation,
		Phone:          b.Phone,
		Whatsapp:       b.Whatsapp,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toBookingResponses(bs []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func (h *Handlers) createVehicleBooking(w http.ResponseWriter, r *http.Request) {
	h.createBooking(w, r, domain.SubjectVehicle)
}

func (h *Handlers) createHotelBooking(w http.ResponseWriter, r *http.Request) {
	h.createBooking(w, r, domain.SubjectHotel)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request, subjectType domain.SubjectType) {
	sess, _ := SessionFrom(r.Context())

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.Bookings.CreateBooking(r.Context(), sess, app.CreateBookingInput{
		SubjectType:    subjectType,
		SubjectID:      req.SubjectID,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		Rooms:          req.Rooms,
		PickupLocation: req.PickupLocation,
		Phone:          req.Phone,
		Whatsapp:       req.Whatsapp,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(b))
}

func (h *Handlers) listOwnBookings(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	bs, err := h.Bookings.ListBookings(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bs))
}

func (h *Handlers) listAllBookings(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = domain.StatusFilterAll
	}
	search := r.URL.Query().Get("search")

	bs, err := h.Bookings.ListAllBookings(r.Context(), sess, statusFilter, search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bs))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
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
	b, err := h.Bookings.UpdateStatus(r.Context(), sess, id, domain.BookingStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b))
}
