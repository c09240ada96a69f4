// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// TelegramReplier sends text back to the chat an update came from.
type TelegramReplier interface {
	Reply(ctx context.Context, chatID int64, text string) error
}
