package ledger

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreLedger is a Firestore-backed implementation of Ledger, one
// document per month key.
type FirestoreLedger struct {
	client     *firestore.Client
	collection string
}

// NewFirestore creates a new Firestore-backed ledger.
func NewFirestore(ctx context.Context, projectID, collection string) (*FirestoreLedger, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &FirestoreLedger{
		client:     client,
		collection: collection,
	}, nil
}

// Close closes the Firestore client.
func (l *FirestoreLedger) Close() error {
	return l.client.Close()
}

// Get returns the entry for a month key, or nil if none is recorded.
func (l *FirestoreLedger) Get(ctx context.Context, monthKey string) (*Entry, error) {
	snap, err := l.client.Collection(l.collection).Doc(monthKey).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, nil
		}
		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	e := mapToEntry(snap.Data())
	return &e, nil
}

// Put records a completed publish, replacing any previous entry.
func (l *FirestoreLedger) Put(ctx context.Context, monthKey string, e Entry) error {
	_, err := l.client.Collection(l.collection).Doc(monthKey).Set(ctx, entryToMap(e))
	if err != nil {
		return fmt.Errorf("writing ledger entry: %w", err)
	}
	return nil
}

// Months returns all recorded entries.
func (l *FirestoreLedger) Months(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	iter := l.client.Collection(l.collection).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating ledger entries: %w", err)
		}
		entries = append(entries, mapToEntry(doc.Data()))
	}

	return entries, nil
}

// entryToMap converts an Entry to a Firestore document map.
func entryToMap(e Entry) map[string]interface{} {
	return map[string]interface{}{
		"month":        e.Month,
		"year":         e.Year,
		"created":      e.Created,
		"skipped":      e.Skipped,
		"published_at": e.PublishedAt,
	}
}

// mapToEntry converts a Firestore document map to an Entry.
func mapToEntry(m map[string]interface{}) Entry {
	e := Entry{}

	if v, ok := m["month"].(string); ok {
		e.Month = v
	}
	if v, ok := m["year"].(int64); ok {
		e.Year = int(v)
	}
	if v, ok := m["created"].(int64); ok {
		e.Created = int(v)
	}
	if v, ok := m["skipped"].(int64); ok {
		e.Skipped = int(v)
	}
	if v, ok := m["published_at"].(time.Time); ok {
		e.PublishedAt = v
	}

	return e
}
