package trail

import (
	"encoding/json"
	"fmt"

	"tracking/internal/entities"
)

func fromDomain(record *entities.HistoryRecord) (*HistoryRecordDB, error) {
	metadata := record.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	eventType := record.EventType
	if eventType == "" {
		eventType = entities.HistoryEventLocation
	}

	return &HistoryRecordDB{
		CourierID:       record.CourierID,
		DateBucket:      record.DateBucket,
		TimestampMicros: record.TimestampMicros,
		Lat:             record.Lat,
		Lng:             record.Lng,
		Accuracy:        record.Accuracy,
		Speed:           record.Speed,
		Heading:         record.Heading,
		TaskID:          record.TaskID,
		EventType:       eventType.String(),
		Metadata:        rawMetadata,
	}, nil
}

func toDomain(model *HistoryRecordDB) (*entities.HistoryRecord, error) {
	if model == nil {
		return nil, nil
	}

	metadata := map[string]string{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	return &entities.HistoryRecord{
		ID:              model.ID,
		CourierID:       model.CourierID,
		DateBucket:      model.DateBucket,
		TimestampMicros: model.TimestampMicros,
		Lat:             model.Lat,
		Lng:             model.Lng,
		Accuracy:        model.Accuracy,
		Speed:           model.Speed,
		Heading:         model.Heading,
		TaskID:          model.TaskID,
		EventType:       entities.HistoryEventType(model.EventType),
		Metadata:        metadata,
	}, nil
}

func toDomainList(models []HistoryRecordDB) ([]entities.HistoryRecord, error) {
	result := make([]entities.HistoryRecord, 0, len(models))
	for i := range models {
		record, err := toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, nil
}
