package geoindex

import (
	"fmt"
	"strconv"
	"time"

	"tracking/internal/entities"
)

const (
	fieldLat        = "lat"
	fieldLng        = "lng"
	fieldAccuracy   = "accuracy"
	fieldSpeed      = "speed"
	fieldHeading    = "heading"
	fieldTaskID     = "task_id"
	fieldCapturedAt = "captured_at_ms"
)

func fromDomain(sample *entities.LocationSample) map[string]interface{} {
	fields := map[string]interface{}{
		fieldLat:        strconv.FormatFloat(sample.Lat, 'f', -1, 64),
		fieldLng:        strconv.FormatFloat(sample.Lng, 'f', -1, 64),
		fieldCapturedAt: strconv.FormatInt(sample.CapturedAt.UnixMilli(), 10),
	}

	if sample.Accuracy != nil {
		fields[fieldAccuracy] = strconv.FormatFloat(*sample.Accuracy, 'f', -1, 64)
	}
	if sample.Speed != nil {
		fields[fieldSpeed] = strconv.FormatFloat(*sample.Speed, 'f', -1, 64)
	}
	if sample.Heading != nil {
		fields[fieldHeading] = strconv.FormatFloat(*sample.Heading, 'f', -1, 64)
	}
	if sample.TaskID != nil {
		fields[fieldTaskID] = *sample.TaskID
	}

	return fields
}

func toDomain(courierID int64, fields map[string]string) (*entities.LocationSample, error) {
	lat, err := strconv.ParseFloat(fields[fieldLat], 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat: %w", err)
	}

	lng, err := strconv.ParseFloat(fields[fieldLng], 64)
	if err != nil {
		return nil, fmt.Errorf("parse lng: %w", err)
	}

	capturedAtMs, err := strconv.ParseInt(fields[fieldCapturedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse captured_at_ms: %w", err)
	}

	sample := &entities.LocationSample{
		CourierID:  courierID,
		Lat:        lat,
		Lng:        lng,
		CapturedAt: time.UnixMilli(capturedAtMs).UTC(),
	}

	if raw, ok := fields[fieldAccuracy]; ok {
		accuracy, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse accuracy: %w", err)
		}
		sample.Accuracy = &accuracy
	}
	if raw, ok := fields[fieldSpeed]; ok {
		speed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse speed: %w", err)
		}
		sample.Speed = &speed
	}
	if raw, ok := fields[fieldHeading]; ok {
		heading, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse heading: %w", err)
		}
		sample.Heading = &heading
	}
	if raw, ok := fields[fieldTaskID]; ok {
		taskID := raw
		sample.TaskID = &taskID
	}

	return sample, nil
}
