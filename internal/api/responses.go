package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// PaymentRequiredResponse tells the client to retry through the paid-join path.
type PaymentRequiredResponse struct {
	Error    string `json:"error" example:"payment of 1500 cents required to join this class"`
	FeeCents int64  `json:"fee_cents" example:"1500"`
}
