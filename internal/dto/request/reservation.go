package request

type CreateReservationRequest struct {
	Space   string `json:"space" validate:"required,space"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	Purpose string `json:"purpose" validate:"max=255"`
}

type ListReservationsRequest struct {
	Status string `validate:"omitempty,oneof=pending approved rejected"`
}
