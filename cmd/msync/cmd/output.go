package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/commercekit/marketsync/internal/api/client"
	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []trendyol.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("BARCODE\tTITLE\tSTOCK\tLIST\tSALE\tAPPROVED\tON SALE\n")
	for i := range products {
		p := &products[i]
		tw.writef("%s\t%s\t%d\t%.2f\t%.2f\t%v\t%v\n",
			p.Barcode,
			truncate(p.Title, 40),
			p.Quantity,
			p.ListPrice,
			p.SalePrice,
			p.Approved,
			p.OnSale,
		)
	}
	return tw.finish()
}

func printDraftDetail(d *domain.ProductDraft) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SKU:\t%s\n", d.SKU)
	tw.writef("Name:\t%s\n", d.Name)
	tw.writef("Brand:\t%s\n", d.Brand)
	tw.writef("Price:\t%.2f\n", d.Price)
	if d.DiscountPrice > 0 {
		tw.writef("Discount:\t%.2f\n", d.DiscountPrice)
	}
	tw.writef("Stock:\t%d\n", d.Stock)
	tw.writef("Approved:\t%v\n", d.Approved)
	tw.writef("On Sale:\t%v\n", d.OnSale)
	return tw.finish()
}

func printBatchDetail(b *apiclient.Batch) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Batch:\t%s\n", b.BatchRequestID)
	tw.writef("State:\t%s\n", b.State)
	tw.writef("Items:\t%d\n", b.ItemCount)
	tw.writef("Failed:\t%d\n", len(b.FailedItems))
	if err := tw.finish(); err != nil {
		return err
	}

	if len(b.FailedItems) == 0 {
		return nil
	}

	fw := newTabWriter(os.Stdout)
	fw.writef("\nINDEX\tBARCODE\tREASONS\n")
	for _, f := range b.FailedItems {
		fw.writef("%d\t%s\t%s\n", f.Index, f.Barcode, strings.Join(f.Reasons, "; "))
	}
	return fw.finish()
}

func printOrdersTable(orders []trendyol.Order) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNUMBER\tSTATUS\tTOTAL\tCUSTOMER\tPLACED\n")
	for i := range orders {
		o := &orders[i]
		tw.writef("%d\t%s\t%s\t%.2f\t%s %s\t%s\n",
			o.ID,
			o.OrderNumber,
			o.Status,
			o.TotalPrice,
			o.CustomerFirstName,
			o.CustomerLastName,
			o.PlacedAt().Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printInvoiceDetail(ref *domain.InvoiceRef) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Invoice:\t%s\n", ref.InvoiceNumber)
	tw.writef("Order:\t%d\n", ref.OrderID)
	tw.writef("Issued:\t%s\n", ref.IssuedAt.Format("2006-01-02 15:04:05"))
	if ref.URL != "" {
		tw.writef("URL:\t%s\n", ref.URL)
	}
	return tw.finish()
}

func printRefdataTable(entries []refdata.Entry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\n")
	for _, e := range entries {
		tw.writef("%d\t%s\n", e.ID, e.Name)
	}
	return tw.finish()
}

func printAttributeSchema(s *trendyol.AttributeSchema) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Category:\t%s (%d)\n", s.Name, s.CategoryID)
	if err := tw.finish(); err != nil {
		return err
	}

	aw := newTabWriter(os.Stdout)
	aw.writef("\nID\tNAME\tREQUIRED\tCUSTOM\tVALUES\n")
	for _, a := range s.Attributes {
		aw.writef("%d\t%s\t%v\t%v\t%d\n",
			a.AttributeID,
			a.AttributeName,
			a.Required,
			a.AllowCustomValue,
			len(a.Values),
		)
	}
	return aw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
