package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSenderPublishesKeyedEvent(t *testing.T) {
	w := &fakeWriter{}
	sender := NewKafkaSenderWithWriter(w)

	n := New("user-42", TypeBadgeEarned, "Badge earned", `Congratulations! You have earned the "Finisher" badge!`, map[string]any{"badgeId": "b1"})
	require.NoError(t, sender.Send(context.Background(), n))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte("user-42"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "badge_earned", string(msg.Headers[0].Value))

	var decoded Notification
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, n.ID, decoded.ID)
	assert.Equal(t, n.Message, decoded.Message)
	assert.Equal(t, "b1", decoded.Data["badgeId"])

	require.NoError(t, sender.Close())
	assert.True(t, w.closed)
}

func TestUserTopic(t *testing.T) {
	assert.Equal(t, "user-abc", UserTopic("abc"))
}
