package events

import "context"

// NopPublisher заглушка публикации событий, когда события отключены
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(_ context.Context, _ string, _ interface{}) error {
	return nil
}
