package notify

import (
	"context"
	"testing"

	"github.com/Deoshabh/weBazaar-sub000/internal/redisx"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHandleOrderEventDropsMalformed(t *testing.T) {
	svc := &Service{}
	err := svc.HandleOrderEvent(context.Background(), kafkago.Message{Value: []byte("not json")})
	assert.NoError(t, err, "malformed events must not block the partition")
}

func TestMaxDefaults(t *testing.T) {
	assert.Equal(t, int64(redisx.AdminFeedMax), (&Service{}).max())
	assert.Equal(t, int64(25), (&Service{Max: 25}).max())
}
