package eventbus

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"keneviz-panel-go/internal/platform/logging"
	"keneviz-panel-go/internal/platform/storage"
)

// auditTopics are the events worth a persistent trail.
var auditTopics = []string{
	TopicChallengePassed,
	TopicLogin,
	TopicLogout,
	TopicAdminLogin,
	TopicKeyMinted,
	TopicLookupExecuted,
	TopicLookupFailed,
}

// Recorder persists published events as audit rows.
type Recorder struct {
	db     *gorm.DB
	logger *logging.Logger
}

// NewRecorder subscribes an audit recorder to every audit topic.
func NewRecorder(bus *Bus, db *gorm.DB, logger *logging.Logger) (*Recorder, error) {
	r := &Recorder{db: db, logger: logger}
	for _, topic := range auditTopics {
		if err := bus.Subscribe(topic, r.record); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) record(event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		r.logger.Warn("audit: marshal event data: %v", err)
		data = []byte("{}")
	}
	row := storage.AuditEvent{
		EventType: event.Type,
		SessionID: event.SessionID,
		KeyID:     event.KeyID,
		Data:      datatypes.JSON(data),
		CreatedAt: event.At,
	}
	if err := r.db.Create(&row).Error; err != nil {
		r.logger.Warn("audit: persist event %s: %v", event.Type, err)
	}
}
