package payment_webhook

// WebhookRequest HTTP request model уведомления платежного провайдера
type WebhookRequest struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData полезная нагрузка уведомления
type WebhookData struct {
	Reference string `json:"reference"`
}

// IgnoredResponse ответ на событие, которое сервис не обрабатывает
// Провайдер получает 200, чтобы не ретраить заведомо неинтересные события
type IgnoredResponse struct {
	Status string `json:"status"`
	Event  string `json:"event"`
}
