package booking

import "time"

type CreateRequest struct {
	ListingID   int64     `json:"listing_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
