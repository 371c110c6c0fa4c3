package catalog

type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	PriceBase   float64 `json:"price_base" binding:"required"`
	City        string  `json:"city"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	PriceBase   *float64 `json:"price_base"`
	City        *string  `json:"city"`
	Active      *bool    `json:"active"`
}

type ListQuery struct {
	Category string `form:"category"`
	City     string `form:"city"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}
