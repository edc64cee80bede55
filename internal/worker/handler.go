package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/orderdesk/orderdesk/internal/domain"
)

var meter = otel.Meter("worker")

// NotificationHandler turns order lifecycle events into customer emails,
// delivered through a mail webhook.
type NotificationHandler struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	processed  metric.Int64Counter
}

func NewNotificationHandler(webhookURL string, client *http.Client, logger *slog.Logger) (*NotificationHandler, error) {
	processed, err := meter.Int64Counter("order_events_processed_total",
		metric.WithDescription("Order events handled by the notification worker"))
	if err != nil {
		return nil, err
	}

	return &NotificationHandler{
		webhookURL: webhookURL,
		httpClient: client,
		logger:     logger,
		processed:  processed,
	}, nil
}

func (h *NotificationHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}

	h.processed.Add(ctx, 1, metric.WithAttributes(attribute.String("event_type", string(event.Type))))

	switch event.Type {
	case domain.OrderEventCreated:
		if err := h.sendConfirmationEmail(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "failed to send confirmation email", "error", err, "order_id", event.OrderID)
			return fmt.Errorf("send confirmation email: %w", err)
		}
		h.logger.InfoContext(ctx, "order confirmation sent", "order_id", event.OrderID, "order_number", event.OrderNumber)

	case domain.OrderEventUpdated, domain.OrderEventDeleted:
		h.logger.InfoContext(ctx, "order event observed", "type", event.Type, "order_id", event.OrderID)

	default:
		h.logger.WarnContext(ctx, "unknown order event type", "type", event.Type, "order_id", event.OrderID)
	}

	return nil
}

func (h *NotificationHandler) sendConfirmationEmail(ctx context.Context, event domain.OrderEvent) error {
	body := map[string]string{
		"to":      event.CustomerEmail,
		"subject": "Order Confirmation: " + event.OrderNumber,
		"body": fmt.Sprintf("Hi %s, your order %s has been received. Order total: %s.",
			event.CustomerName, event.OrderNumber, event.TotalAmount.StringFixed(2)),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.webhookURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail webhook returned status %d", resp.StatusCode)
	}

	return nil
}
