package api

// ErrorResponse carries a human message plus a stable machine code so
// clients can branch on the rejection cause.
type ErrorResponse struct {
	Error string `json:"error" example:"slot already booked"`
	Code  string `json:"code,omitempty" example:"slot_already_booked"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
