package response

import (
	"time"

	"fatec-reserve/internal/data/entity"
)

type ReservationResponse struct {
	ID          int64                    `json:"id"`
	Space       string                   `json:"space"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Purpose     string                   `json:"purpose,omitempty"`
	Requester   string                   `json:"requester"`
	RequesterID string                   `json:"requester_id"`
	Status      entity.ReservationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

type ApprovalQueueResponse struct {
	Pending      []ReservationResponse `json:"pending"`
	History      []ReservationResponse `json:"history"`
	PendingCount int                   `json:"pending_count"`
}

type DashboardResponse struct {
	FullName       string                `json:"full_name"`
	Role           entity.UserRole       `json:"role"`
	PendingCount   int                   `json:"pending_count"`
	CanApprove     bool                  `json:"can_approve"`
	CanViewReports bool                  `json:"can_view_reports"`
	MyReservations []ReservationResponse `json:"my_reservations"`
}

type SpacesResponse struct {
	Spaces []string `json:"spaces"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		Space:       r.Space,
		Date:        r.Date,
		Time:        r.Time,
		Purpose:     r.Purpose,
		Requester:   r.Requester,
		RequesterID: r.RequesterID.String(),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func ReservationsToResponse(rs []*entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(rs))
	for i, r := range rs {
		out[i] = ReservationToResponse(r)
	}
	return out
}
