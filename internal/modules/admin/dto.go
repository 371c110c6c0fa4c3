package admin

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PaymentsQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}
