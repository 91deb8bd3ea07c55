package dto

type ConnectionRequest struct {
	ReceiverID string  `json:"receiverId" validate:"required"`
	Message    *string `json:"message" validate:"omitempty,max=300"`
}

type ConnectionResponseRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}

type InfoShareRequest struct {
	Shared *bool `json:"shared"`
}
