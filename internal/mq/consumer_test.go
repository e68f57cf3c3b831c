package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumer_Subscribe_AlreadyStarted(t *testing.T) {
	t.Run("subscribe when already started returns nil", func(t *testing.T) {
		c := &Consumer{started: true}

		err := c.Subscribe()
		assert.NoError(t, err)
	})
}

func TestConsumer_Close(t *testing.T) {
	t.Run("nil consumer close returns nil", func(t *testing.T) {
		var c *Consumer
		err := c.Close()
		assert.NoError(t, err)
	})

	t.Run("consumer with nil client close returns nil", func(t *testing.T) {
		c := &Consumer{client: nil}
		err := c.Close()
		assert.NoError(t, err)
	})
}

func TestClickHandler(t *testing.T) {
	t.Run("handler processes message", func(t *testing.T) {
		processed := false
		handler := ClickHandler(func(ctx context.Context, msg *ClickMessage) error {
			processed = true
			assert.Equal(t, "demo", msg.Slug)
			return nil
		})

		err := handler(context.Background(), &ClickMessage{Slug: "demo"})
		assert.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("handler returns error", func(t *testing.T) {
		handler := ClickHandler(func(ctx context.Context, msg *ClickMessage) error {
			return assert.AnError
		})

		err := handler(context.Background(), &ClickMessage{Slug: "demo"})
		assert.Error(t, err)
	})
}
