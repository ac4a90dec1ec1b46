package services

import (
	"encoding/json"

	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/pkg/logger"
)

// notifier publishes mail events. Delivery is best effort: failures are
// logged and never returned to the caller.
type notifier struct {
	producer interfaces.ProducerHandler
	log      *logger.Logger
}

func (n notifier) publish(key string, event any) {
	if n.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.WithError(err).WithField("key", key).Error("marshal event")
		return
	}
	if err := n.producer.PublishMessage([]byte(key), payload); err != nil {
		n.log.WithError(err).WithField("key", key).Warn("publish event")
	}
}
