package resident

type ApproveRequest struct {
	Classification string `json:"classification" binding:"required"`
}

type DeclineRequest struct {
	Reason string `json:"reason" binding:"required"`
}
