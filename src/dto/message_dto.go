package dto

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type NotificationUpdateRequest struct {
	Action          string   `json:"action" validate:"required,oneof=mark_read mark_all_read"`
	NotificationIDs []string `json:"notificationIds"`
}
