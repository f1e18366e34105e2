package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/ledger"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/printer"
)

// PrinterService formats sale receipts and sends them to a thermal printer.
type PrinterService struct {
	printer     printer.Printer
	store       *store.Store
	printerType string
	log         *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, st *store.Store, printerType string, log *logrus.Logger) *PrinterService {
	return &PrinterService{
		printer:     p,
		store:       st,
		printerType: printerType,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	settings := s.store.Settings()
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRINTER TEST").
		SetBold(false).
		Text(settings.StoreName).
		LineFeed().
		Text(time.Now().Format("2006-01-02 15:04")).
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// PrintReceipt prints the receipt for a recorded sale.
func (s *PrinterService) PrintReceipt(transactionID string) (*entity.Transaction, error) {
	txn, ok := s.store.TransactionByID(transactionID)
	if !ok {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	data := s.formatReceipt(txn)
	if err := s.printer.Print(data); err != nil {
		s.log.WithError(err).WithField("receipt_no", txn.ReceiptNo).Warn("receipt print failed")
		return &txn, fmt.Errorf("failed to print receipt: %w", err)
	}
	return &txn, nil
}

// formatReceipt converts a sale into ESC/POS bytes for 58mm paper.
func (s *PrinterService) formatReceipt(txn entity.Transaction) []byte {
	settings := s.store.Settings()
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(settings.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if settings.Address != "" {
		doc.Text(settings.Address)
	}
	if settings.Phone != "" {
		doc.Text(settings.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", txn.ReceiptNo).
		KeyValue("Date:", txn.CreatedAt.Format("2006-01-02 15:04"))
	if txn.CustomerName != "" {
		doc.KeyValue("Customer:", txn.CustomerName)
	}
	doc.KeyValue("Payment:", string(txn.PaymentMethod))

	doc.Separator('-')

	for _, item := range txn.Items {
		doc.ItemLine(item.Qty, item.Name, fmt.Sprintf("%.2f", item.Subtotal))
		doc.TextF("  %g %s @ %.2f", item.Qty, item.Unit, item.Price)
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", txn.Subtotal))
	if txn.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", txn.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", txn.Total)).
		SetBold(false)

	switch txn.PaymentMethod {
	case enum.PaymentMethodCash:
		doc.KeyValue("Cash:", fmt.Sprintf("%.2f", txn.Tendered)).
			KeyValue("Change:", fmt.Sprintf("%.2f", txn.Change))
	case enum.PaymentMethodCredit:
		doc.KeyValue("Due date:", ledger.DueDate(txn.CreatedAt).Format("2006-01-02"))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(settings.ReceiptNote).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
