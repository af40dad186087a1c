package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"slotbook/server/internal/model"
	"slotbook/server/internal/schedule"
	"slotbook/server/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Date is required")
		return
	}

	times, err := schedule.SlotTimes(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid date")
		return
	}

	// Materialize the date's slots before reading them. Existing
	// records keep their booking state.
	if err := s.store.EnsureSlots(r.Context(), times); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to generate slots")
		return
	}

	slots, err := s.store.ListSlots(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to list slots")
		return
	}

	writeJSON(w, http.StatusOK, slots)
}

type bookRequest struct {
	SlotTime string `json:"slotTime"`
	UserID   int64  `json:"userId"`
}

type bookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	req.SlotTime = strings.TrimSpace(req.SlotTime)
	if req.UserID == 0 {
		req.UserID = userIDFromContext(r.Context())
	}
	if req.SlotTime == "" || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "Slot time and User ID are required")
		return
	}

	_, err := s.store.BookSlot(r.Context(), store.BookSlotRequest{
		SlotTime: req.SlotTime,
		UserID:   req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Slot not found")
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusBadRequest, "conflict", "Slot already booked")
		default:
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, bookResponse{Success: true, Message: "Slot booked successfully"})
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	userID := userIDFromContext(r.Context())
	if v := strings.TrimSpace(r.URL.Query().Get("userId")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "User ID required")
			return
		}
		userID = id
	}
	if userID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "User ID required")
		return
	}

	slots, err := s.store.ListBookingsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to list bookings")
		return
	}

	bookings := make([]model.Booking, len(slots))
	for i, sl := range slots {
		bookings[i] = model.Booking{SlotTime: sl.Time}
	}
	writeJSON(w, http.StatusOK, bookings)
}
