package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hmsv1/hospital-system/internal/core/domain"
)

const (
	DefaultAuditStream = "hms:auth:audit"
	auditStreamMaxLen  = 100_000
)

// AuditStream appends login audit records to a capped Redis stream.
// Stream entries: identifier, outcome, reason, account_id, at (RFC3339Nano).
// Identifiers that matched no account are stored as a fingerprint since
// they are often a password typed into the wrong field.
type AuditStream struct {
	client *redis.Client
	stream string
}

// NewAuditStream creates an AuditStream writing to stream, or to
// DefaultAuditStream when stream is empty.
func NewAuditStream(client *redis.Client, stream string) *AuditStream {
	if stream == "" {
		stream = DefaultAuditStream
	}
	return &AuditStream{client: client, stream: stream}
}

// Write appends one record, trimming the stream to roughly auditStreamMaxLen entries.
func (a *AuditStream) Write(ctx context.Context, entry domain.LoginAudit) error {
	err := a.client.XAdd(ctx, &redis.XAddArgs{
		Stream: a.stream,
		MaxLen: auditStreamMaxLen,
		Approx: true,
		Values: auditFields(entry),
	}).Err()
	if err != nil {
		return fmt.Errorf("audit append: %w", err)
	}
	return nil
}

func auditFields(entry domain.LoginAudit) map[string]any {
	return map[string]any{
		"identifier": auditIdentifier(entry),
		"outcome":    string(entry.Outcome),
		"reason":     entry.Reason,
		"account_id": strconv.FormatInt(entry.AccountID, 10),
		"at":         entry.At.UTC().Format(time.RFC3339Nano),
	}
}

func auditIdentifier(entry domain.LoginAudit) string {
	if entry.Reason != domain.ReasonUnknownIdentifier {
		return entry.Identifier
	}
	sum := sha256.Sum256([]byte(entry.Identifier))
	return "sha256:" + hex.EncodeToString(sum[:8])
}
