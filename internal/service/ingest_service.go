package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/raneshrk02/regulations-chat/internal/dto"
	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/pkg/logger"
	"github.com/raneshrk02/regulations-chat/internal/repository/contract"
	"github.com/raneshrk02/regulations-chat/pkg/events"
	pkgNats "github.com/raneshrk02/regulations-chat/pkg/nats"
	"github.com/raneshrk02/regulations-chat/pkg/registry"
)

// maxAnnouncedDocuments caps how many document numbers ride along on one
// ingestion event.
const maxAnnouncedDocuments = 5

type IIngestService interface {
	// IngestWindow fetches the posted-date window from the registry and
	// upserts every document. Returns the number of stored rows.
	IngestWindow(ctx context.Context, startDate, endDate time.Time) (int, error)

	// RunPolling ingests the configured window on a fixed interval until the
	// context is cancelled.
	RunPolling(ctx context.Context, interval time.Duration, windowDays int)
}

type ingestService struct {
	client        *registry.Client
	repo          contract.DocumentRepository
	pubSub        *gochannel.GoChannel
	natsPublisher *pkgNats.Publisher // nil when NATS is not configured
	instanceID    string
	logger        logger.ILogger
}

func NewIngestService(
	client *registry.Client,
	repo contract.DocumentRepository,
	pubSub *gochannel.GoChannel,
	natsPublisher *pkgNats.Publisher,
	instanceID string,
	sysLogger logger.ILogger,
) IIngestService {
	return &ingestService{
		client:        client,
		repo:          repo,
		pubSub:        pubSub,
		natsPublisher: natsPublisher,
		instanceID:    instanceID,
		logger:        sysLogger,
	}
}

func (is *ingestService) IngestWindow(ctx context.Context, startDate, endDate time.Time) (int, error) {
	start := startDate.Format("2006-01-02")
	end := endDate.Format("2006-01-02")

	docs, err := is.client.FetchDocuments(ctx, start, end)
	if err != nil {
		return 0, err
	}

	stored := 0
	var announced []string
	for _, doc := range docs {
		ent := toDocumentEntity(doc)
		if ent == nil {
			continue
		}
		if err := is.repo.Upsert(ctx, ent); err != nil {
			is.logger.Error("IngestService", "Failed to upsert document", map[string]interface{}{
				"document_number": ent.DocumentNumber,
				"error":           err.Error(),
			})
			continue
		}
		stored++
		if len(announced) < maxAnnouncedDocuments {
			announced = append(announced, ent.DocumentNumber)
		}
	}

	is.logger.Info("IngestService", "Ingestion window complete", map[string]interface{}{
		"window_start": start,
		"window_end":   end,
		"fetched":      len(docs),
		"stored":       stored,
	})

	if stored > 0 {
		is.publishIngested(ctx, dto.DocumentsIngestedMessage{
			Count:           stored,
			WindowStart:     start,
			WindowEnd:       end,
			NewestDocuments: announced,
			IngestedAt:      time.Now(),
		})
	}

	return stored, nil
}

func (is *ingestService) RunPolling(ctx context.Context, interval time.Duration, windowDays int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately so a fresh deployment has data before the first tick.
	is.pollOnce(ctx, windowDays)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			is.pollOnce(ctx, windowDays)
		}
	}
}

func (is *ingestService) pollOnce(ctx context.Context, windowDays int) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)
	if _, err := is.IngestWindow(ctx, start, end); err != nil {
		is.logger.Error("IngestService", "Polling pass failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (is *ingestService) publishIngested(ctx context.Context, payload dto.DocumentsIngestedMessage) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := is.pubSub.Publish(events.EventDocumentsIngested, msg); err != nil {
		is.logger.Warn("IngestService", "Failed to publish ingestion event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if is.natsPublisher != nil {
		event := events.BaseEvent{
			Type: events.EventDocumentsIngested,
			Data: map[string]interface{}{
				"count":        payload.Count,
				"window_start": payload.WindowStart,
				"window_end":   payload.WindowEnd,
				// Consumers on the same instance drop their own echo.
				"origin": is.instanceID,
			},
			OccurredAt: payload.IngestedAt,
		}
		if err := is.natsPublisher.Publish(ctx, event); err != nil {
			is.logger.Warn("IngestService", "Failed to publish ingestion event to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func toDocumentEntity(doc registry.Document) *entity.RegulationDocument {
	attrs := doc.Attributes
	number := attrs.DocumentNumber
	if number == "" {
		number = doc.ID
	}
	if number == "" {
		return nil
	}

	var pubDate *time.Time
	if attrs.PostedDate != "" {
		if t, err := parseRegistryDate(attrs.PostedDate); err == nil {
			pubDate = &t
		}
	}

	agencies := make([]string, 0, len(attrs.Agencies))
	for _, a := range attrs.Agencies {
		if a.Name != "" {
			agencies = append(agencies, a.Name)
		}
	}

	agency := attrs.AgencyID
	if len(agencies) > 0 {
		agency = agencies[0]
	}

	raw := map[string]interface{}{
		"id":            doc.ID,
		"document_type": attrs.DocumentType,
		"agency_id":     attrs.AgencyID,
	}

	return &entity.RegulationDocument{
		DocumentNumber:  number,
		Title:           attrs.Title,
		DocumentType:    attrs.DocumentType,
		PublicationDate: pubDate,
		Agency:          agency,
		Abstract:        attrs.Abstract,
		FullText:        attrs.FileText,
		Agencies:        agencies,
		RawMetadata:     raw,
	}
}

func parseRegistryDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
