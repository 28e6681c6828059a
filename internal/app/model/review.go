package model

import "time"

type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "approved"
	ReviewPending  ReviewStatus = "pending"
)

// Review only persists a boolean approval flag. Rejecting a review clears the
// flag, which leaves it indistinguishable from one never moderated.
type Review struct {
	ID         string    `json:"id"`
	Product    Ref       `json:"product"`
	User       Ref       `json:"user"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *Review) Status() ReviewStatus {
	if r.IsApproved {
		return ReviewApproved
	}
	return ReviewPending
}
