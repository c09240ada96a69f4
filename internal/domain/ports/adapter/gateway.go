package adapter

import (
	"context"

	"chat-relay/internal/domain/model"
)

// DeliveryGateway pushes a formatted reply to a phone number.
// delivered is false when the gateway answered but did not accept the message;
// err is reserved for transport failures.
type DeliveryGateway interface {
	Push(ctx context.Context, msg model.OutboundMessage) (delivered bool, err error)
}
