// Package platform replicates ledger transactions to the upstream
// property-management platform. Replication is best-effort: a failed
// push marks the transaction, it never invalidates the local write.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Client pushes a transaction to the upstream system and returns its
// external ID.
type Client interface {
	PushTransaction(ctx context.Context, transaction models.Transaction) (int64, error)
}

// Result is the outcome of a sync attempt. There are exactly two:
// synced or failed. A failure carries the reason, nothing more.
type Result struct {
	Status models.SyncStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

// Synced reports whether the push went through.
func (r Result) Synced() bool {
	return r.Status == models.SyncSynced
}

// Push replicates a transaction and records the outcome on it. The
// returned Result is never accompanied by an error the caller has to
// fail on: sync problems are the transaction's problem, not the
// request's.
func Push(ctx context.Context, db *gorm.DB, client Client, transactionID uuid.UUID) Result {
	var transaction models.Transaction
	err := db.Preload("Lines").First(&transaction, "id = ?", transactionID).Error
	if err != nil {
		return fail(db, transactionID, err)
	}

	if client == nil {
		return fail(db, transactionID, errors.New("no upstream platform is configured"))
	}

	externalID, err := client.PushTransaction(ctx, transaction)
	if err != nil {
		return fail(db, transactionID, err)
	}

	err = db.Model(&models.Transaction{}).
		Where("id = ?", transactionID).
		Updates(map[string]any{
			"external_id": externalID,
			"sync_status": models.SyncSynced,
			"sync_error":  "",
		}).Error
	if err != nil {
		return fail(db, transactionID, err)
	}

	return Result{Status: models.SyncSynced}
}

func fail(db *gorm.DB, transactionID uuid.UUID, cause error) Result {
	log.Warn().Err(cause).Str("transaction", transactionID.String()).Msg("transaction sync failed")

	err := db.Model(&models.Transaction{}).
		Where("id = ?", transactionID).
		Updates(map[string]any{
			"sync_status": models.SyncFailed,
			"sync_error":  cause.Error(),
		}).Error
	if err != nil {
		log.Error().Err(err).Str("transaction", transactionID.String()).Msg("could not record sync failure")
	}

	return Result{Status: models.SyncFailed, Reason: cause.Error()}
}

// HTTPClient implements Client against the platform's REST API.
type HTTPClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewHTTPClient returns a client with a sane request timeout.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type pushResponse struct {
	ID int64 `json:"id"`
}

func (c *HTTPClient) PushTransaction(ctx context.Context, transaction models.Transaction) (int64, error) {
	body, err := json.Marshal(transaction)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}

	return parsed.ID, nil
}
