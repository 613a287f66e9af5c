package db

import (
	"encoding/json"
	"log/slog"

	"github.com/dirmaster/dirmaster-backend/internal/application/events"
)

func MapToRawMessage(m map[string]interface{}) json.RawMessage {
	if m == nil {
		return json.RawMessage(`{}`)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		slog.Error("error marshaling map", "err", err)
		return json.RawMessage(`{}`)
	}
	return raw
}

func RawMessageToMap(raw json.RawMessage) map[string]interface{} {
	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Error("error unmarshaling payload", "err", err)
	}
	return result
}

func MapOutboxModelToEntryReceived(outbox Outbox) events.EntryReceived {
	var entryReceived events.EntryReceived
	if err := json.Unmarshal(outbox.Payload, &entryReceived); err != nil {
		slog.Error("error unmarshaling event", "err", err)
		return events.EntryReceived{}
	}
	return entryReceived
}

func MapOutboxModelToEntryPublished(outbox Outbox) events.EntryPublished {
	var entryPublished events.EntryPublished
	if err := json.Unmarshal(outbox.Payload, &entryPublished); err != nil {
		slog.Error("error unmarshaling event", "err", err)
		return events.EntryPublished{}
	}
	return entryPublished
}
