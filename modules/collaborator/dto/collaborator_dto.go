package dto

type SendRequestRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

type AddEventCollaboratorRequest struct {
	UserID int64 `json:"user_id"`
}
