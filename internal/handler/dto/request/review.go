package request

import "bodyshop/internal/usecase/commands"

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=1000"`
}

func (r CreateReviewRequest) ToCommand() commands.CreateReviewRequest {
	return commands.CreateReviewRequest{BookingID: r.BookingID, Rating: r.Rating, Comment: r.Comment}
}
