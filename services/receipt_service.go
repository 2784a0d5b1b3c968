package services

import (
	"bytes"
	"fmt"

	"pos-backend/entity"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	receiptWidth  = 80.0 // roll paper, mm
	receiptMargin = 5.0
	itemHeight    = 8.0
	qrSize        = 30.0
	// header, totals, footer lines and the QR code, margins included
	receiptFixedHeight = 95.0
)

// amounts are printed the Indonesian way: 60.500
var moneyPrinter = message.NewPrinter(language.Indonesian)

// ReceiptService renders a printable receipt for a stored order.
type ReceiptService struct {
	Orders    *OrderService
	ShopName  string
	TaxLabel  string
	QRPayload func(o *entity.Order) string
}

func NewReceiptService(orders *OrderService, shopName string) *ReceiptService {
	return &ReceiptService{
		Orders:   orders,
		ShopName: shopName,
		TaxLabel: fmt.Sprintf("Tax (%s%%)", orders.Pricing.TaxRate.Shift(2).String()),
		QRPayload: func(o *entity.Order) string {
			return fmt.Sprintf("ORDER|%d|%d", o.ID, o.Total)
		},
	}
}

// Render returns the PDF bytes for an order the actor may see.
func (s *ReceiptService) Render(actor Identity, orderID uint) ([]byte, *entity.Order, error) {
	o, err := s.Orders.Detail(actor, orderID)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.draw(o)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), o, nil
}

// draw lays the receipt out on a single page whose height grows with the item count.
func (s *ReceiptService) draw(o *entity.Order) (*gofpdf.Fpdf, error) {
	qrPNG, err := qrcode.Encode(s.QRPayload(o), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: receiptWidth, Ht: receiptHeight(len(o.Items))},
	})
	pdf.SetMargins(receiptMargin, receiptMargin, receiptMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	w := receiptWidth - 2*receiptMargin

	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(w, 6, s.ShopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(w, 4, fmt.Sprintf("Order #%d", o.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(w, 4, o.CreatedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	mode := string(o.DiningMode)
	if o.TableNo != "" {
		mode += " / table " + o.TableNo
	}
	pdf.CellFormat(w, 4, mode, "", 1, "C", false, 0, "")
	if o.CustomerName != "" {
		pdf.CellFormat(w, 4, "Customer: "+o.CustomerName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	for _, it := range o.Items {
		pdf.CellFormat(w, itemHeight/2, it.ProductName, "", 1, "L", false, 0, "")
		pdf.CellFormat(40, itemHeight/2, fmt.Sprintf("  %d x %s", it.Quantity, formatMoney(it.Price)), "", 0, "L", false, 0, "")
		pdf.CellFormat(w-40, itemHeight/2, formatMoney(it.LineTotal), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	line := func(label string, amount int64) {
		pdf.CellFormat(40, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(w-40, 4, formatMoney(amount), "", 1, "R", false, 0, "")
	}
	line("Subtotal", o.Subtotal)
	line(s.TaxLabel, o.Tax)
	if o.Packaging > 0 {
		line("Packaging", o.Packaging)
	}
	pdf.SetFont("Courier", "B", 9)
	line("TOTAL", o.Total)
	pdf.SetFont("Courier", "", 8)
	if o.PaymentMethod != "" {
		pdf.CellFormat(w, 4, "Paid by "+string(o.PaymentMethod), "", 1, "L", false, 0, "")
	}
	if o.Status != entity.OrderCompleted {
		pdf.CellFormat(w, 4, string(o.Status), "", 1, "C", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	qrY := pdf.GetY() + 3
	pdf.ImageOptions("qr", (receiptWidth-qrSize)/2, qrY, qrSize, qrSize, false, opts, 0, "")
	pdf.SetY(qrY + qrSize)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("draw receipt: %w", err)
	}
	return pdf, nil
}

func receiptHeight(items int) float64 {
	return receiptFixedHeight + float64(items)*itemHeight
}

func formatMoney(v int64) string {
	return moneyPrinter.Sprintf("%d", v)
}
