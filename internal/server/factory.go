package server

import (
	"fmt"

	"recruitment-form/internal/common/config"
	apphttp "recruitment-form/internal/common/http"
	"recruitment-form/internal/common/logger"
	"recruitment-form/internal/common/observability"
	"recruitment-form/internal/form"
	"recruitment-form/internal/submission"
)

// NewSessionFactory wires a default record and a submission handler for
// each new session. Records are strict in development. The payload schema
// is compiled once and shared by every handler.
func NewSessionFactory(cfg *config.Config, schema *form.Schema, client *apphttp.Client, obs *observability.Observability, log logger.Logger) (SessionFactory, error) {
	subCfg := submission.LoadConfig(cfg.Submission)
	strict := cfg.App.IsDevelopment()

	payloadSchema, err := submission.CompilePayloadSchema(schema, submission.NewFieldFilter(subCfg.ExcludedFields))
	if err != nil {
		return nil, err
	}

	return func(id string, notifier submission.Notifier) (*form.Record, *submission.Handler, error) {
		record := form.NewRecord(schema, form.WithStrict(strict))
		record.Subscribe(func(c form.Change) {
			log.Debug("field changed", map[string]interface{}{
				"sessionId": id,
				"field":     c.Field,
			})
		})
		handler, err := submission.NewHandler(subCfg, record, client, log,
			submission.WithNotifier(notifier),
			submission.WithObservability(obs),
			submission.WithSessionID(id),
			submission.WithPayloadSchema(payloadSchema),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("session %s: %w", id, err)
		}
		return record, handler, nil
	}, nil
}
