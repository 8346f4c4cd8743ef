// Package pdf renders receipts as PDF documents.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/matchsage/booking-api/internal/domain/receipt"
	"github.com/matchsage/booking-api/internal/timezone"
)

type ReceiptRenderer struct {
	// Layout is the time format used for dates on the document.
	Layout string
}

func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{Layout: "2006-01-02 15:04 MST"}
}

func (r *ReceiptRenderer) Render(w io.Writer, doc receipt.Document) error {
	loc := timezone.Location("")

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetTitle("Receipt "+doc.Receipt.ReceiptNo, true)
	f.AddPage()

	f.SetFont("Times", "B", 24)
	f.CellFormat(0, 14, "Receipt", "", 1, "L", false, 0, "")
	f.Ln(4)

	f.SetFont("Times", "", 13)
	lines := [][2]string{
		{"Receipt No.", doc.Receipt.ReceiptNo},
		{"Customer", doc.Customer},
		{"Service", doc.ServiceName},
		{"Reservation", fmt.Sprintf("#%d", doc.Reservation.ID)},
		{"From", doc.Reservation.DateReserved.In(loc).Format(r.Layout)},
		{"To", doc.Reservation.EndsAt.In(loc).Format(r.Layout)},
		{"Price", fmt.Sprintf("%.2f", doc.Receipt.Price)},
		{"Payment date", doc.Receipt.PaymentDate.In(loc).Format(r.Layout)},
		{"Payment status", doc.Receipt.PaymentStatus},
	}
	if doc.Receipt.PaymentRef != "" {
		lines = append(lines, [2]string{"Payment ref.", doc.Receipt.PaymentRef})
	}
	if doc.Reservation.IsCancel {
		lines = append(lines, [2]string{"Note", "Reservation cancelled"})
	}

	for _, l := range lines {
		f.SetFont("Times", "B", 13)
		f.CellFormat(45, 9, l[0], "", 0, "L", false, 0, "")
		f.SetFont("Times", "", 13)
		f.MultiCell(0, 9, l[1], "", "L", false)
	}

	if err := f.Error(); err != nil {
		return err
	}
	return f.Output(w)
}
