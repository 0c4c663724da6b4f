package assist

import (
	"fmt"
	"strings"
	"time"

	"github.com/chaiwat/pcnova/internal/domain"
)

// resolveOrder resolves the customer's typed fragment to a specific order.
// The match is a bidirectional case-folded substring test, tolerant of extra
// characters like "#" or a partial number. The first match in the service's
// most-recent-first order wins; there is no disambiguation step.
func resolveOrder(text string, orders []domain.Order) (*domain.Order, bool) {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return nil, false
	}
	for i := range orders {
		number := strings.ToLower(orders[i].OrderNumber)
		if strings.Contains(number, query) || strings.Contains(query, number) {
			return &orders[i], true
		}
	}
	return nil, false
}

// orderSummary renders the fixed-format Thai summary of a single order.
func orderSummary(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "คำสั่งซื้อ %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "วันที่สั่งซื้อ: %s\n", formatThaiDate(o.CreatedAt))
	fmt.Fprintf(&b, "ยอดรวม: %.2f บาท\n", o.Total)
	fmt.Fprintf(&b, "สถานะคำสั่งซื้อ: %s\n", orderStatusLabel(o.OrderStatus))
	fmt.Fprintf(&b, "สถานะการชำระเงิน: %s\n", paymentStatusLabel(o.PaymentStatus))
	b.WriteString("รายการสินค้า:\n")
	for i, item := range o.Items {
		fmt.Fprintf(&b, "%d. %s x%d\n", i+1, item.Name, item.Quantity)
	}
	b.WriteString("\nพิมพ์หมายเลขคำสั่งซื้ออื่นเพื่อตรวจสอบต่อ หรือพิมพ์ 0 เพื่อกลับสู่เมนูหลักครับ")
	return b.String()
}

var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// formatThaiDate renders a long-form Thai date with a Buddhist-era year,
// e.g. "2 มกราคม 2569".
func formatThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+543)
}
