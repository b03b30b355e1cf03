package dto

// ContactRequest asks the platform to email the owner of a matched report.
// The matching engine itself never sends mail; this is a separate, explicit
// user action.
type ContactRequest struct {
	OwnerID     string `json:"ownerId" validate:"required"`
	SenderEmail string `json:"senderEmail" validate:"required,email"`
	Title       string `json:"title" validate:"required,max=200"`
	ItemDetails string `json:"itemDetails" validate:"required,max=4000"`
}
