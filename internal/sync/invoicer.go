package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	domain "github.com/commercekit/marketsync/pkg/types"
)

// SequentialInvoicer is the built-in Invoicer. It issues sequential invoice
// numbers locally and exists so the daemon works out of the box; a real
// deployment swaps in a client for its invoicing provider.
type SequentialInvoicer struct {
	prefix string
	seq    atomic.Int64
	log    *slog.Logger
	now    func() time.Time
}

// NewSequentialInvoicer creates an invoicer issuing numbers like MS-2026-000001.
func NewSequentialInvoicer(log *slog.Logger) *SequentialInvoicer {
	if log == nil {
		log = slog.Default()
	}
	return &SequentialInvoicer{
		prefix: "MS",
		log:    log,
		now:    time.Now,
	}
}

// CreateInvoice implements Invoicer.
func (i *SequentialInvoicer) CreateInvoice(_ context.Context, order domain.ImportedOrder) (*domain.InvoiceRef, error) {
	issued := i.now()
	n := i.seq.Add(1)

	ref := &domain.InvoiceRef{
		InvoiceNumber: fmt.Sprintf("%s-%d-%06d", i.prefix, issued.Year(), n),
		OrderID:       order.ID,
		IssuedAt:      issued,
	}

	i.log.Info("invoice issued",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"invoice", ref.InvoiceNumber,
	)
	return ref, nil
}
