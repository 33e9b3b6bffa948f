package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/models"
	"github.com/kinshiphq/kinship/internal/slots"
	"github.com/kinshiphq/kinship/internal/store"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newRealStore returns a loaded store over in-memory slots.
func newRealStore(t *testing.T) *store.Store {
	t.Helper()

	now := t0
	s := store.New(slots.NewMemory(), testLogger(), store.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	s.Load(context.Background())

	return s
}

func seedContact(t *testing.T, s *store.Store, name string, mutate func(*models.ContactFields)) models.Contact {
	t.Helper()

	req := models.CreateContactRequest{ContactFields: models.ContactFields{Name: name}}
	if mutate != nil {
		mutate(&req.ContactFields)
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("validate %s: %v", name, err)
	}

	c, err := s.AddContact(context.Background(), req.ContactFields)
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}

	return c
}
