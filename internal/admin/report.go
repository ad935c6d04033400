package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
)

const (
	ActionStats  = "admin_stats"
	ActionExport = "admin_export"

	topProducts = 5
)

// CSVHeader is the column order of the order export.
var CSVHeader = []string{"ID", "Date", "Customer", "Phone", "Total", "Status", "Payment", "Delivery", "Address", "Comment"}

func (a *Admin) since() time.Time {
	return a.now().AddDate(0, 0, -a.ReportDays)
}

// Stats shows order count, revenue and the best sellers of the report window.
func (a *Admin) Stats(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	stats, err := a.Orders.Stats(c.Ctx, a.since(), topProducts)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(c.T.T(i18n.AdminStats, a.ReportDays, stats.Count, c.T.Price(stats.Revenue)))
	if len(stats.TopProducts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(c.T.T(i18n.AdminTopProducts))
		for i, p := range stats.TopProducts {
			b.WriteString("\n")
			b.WriteString(c.T.T(i18n.AdminTopProductLine, i+1, p.Name, p.Quantity))
		}
	}
	return chat.Text(b.String(),
		chat.Row(chat.Btn(c.T.T(i18n.BtnAdminExport), ActionExport)),
		menuRow(c.T),
	), nil
}

// Export writes the report window's orders to a temporary CSV file and sends it.
// The renderer removes the file after upload.
func (a *Admin) Export(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	list, err := a.Orders.OrdersSince(c.Ctx, a.since())
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return chat.Alert(c.T.T(i18n.AdminNothingToExport)), nil
	}

	f, err := os.CreateTemp(a.TempDir, "orders-*.csv")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if err := WriteCSV(f, c.T, list); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close csv: %w", err)
	}
	a.Logger.Info("orders exported",
		zap.Int64("admin_id", c.UserID), zap.Int("orders", len(list)), zap.String("file", f.Name()))

	return []chat.Reply{{
		Document: &chat.Document{
			Path:    f.Name(),
			Name:    "orders_" + a.now().Format("20060102") + ".csv",
			Caption: c.T.T(i18n.AdminExportCaption, a.ReportDays, len(list)),
		},
	}}, nil
}

// WriteCSV writes a header row and one row per order. Payment and delivery
// use the localized labels, totals keep two decimals.
func WriteCSV(w io.Writer, t *i18n.Localizer, list []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range list {
		record := []string{
			strconv.Itoa(o.ID),
			o.CreatedAt.Format(orders.DateLayout),
			o.FullName,
			o.Phone,
			o.Total.StringFixed(2),
			orders.StatusLabel(t, o.Status),
			orders.PaymentLabel(t, o.Payment),
			orders.DeliveryLabel(t, o.Delivery),
			orders.AddressLabel(t, o.Delivery, o.Address),
			o.Comment,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
