package assist

import (
	"strings"
	"testing"
	"time"

	"github.com/chaiwat/pcnova/internal/domain"
)

func testOrders() []domain.Order {
	return []domain.Order{
		{
			ID:            "o2",
			OrderNumber:   "ORD-1234",
			CreatedAt:     time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
			Total:         12590,
			OrderStatus:   domain.OrderStatusShipped,
			PaymentStatus: domain.PaymentStatusPaid,
			Items:         []domain.OrderItem{{Name: "RTX 4060 Ti", Quantity: 1}},
		},
		{
			ID:            "o1",
			OrderNumber:   "12345",
			CreatedAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Total:         890,
			OrderStatus:   domain.OrderStatusDelivered,
			PaymentStatus: domain.PaymentStatusPaid,
			Items:         []domain.OrderItem{{Name: "สายไฟ PCIe", Quantity: 2}},
		},
	}
}

func TestResolveOrderBidirectionalSubstring(t *testing.T) {
	t.Parallel()

	orders := testOrders()

	tests := []struct {
		name  string
		input string
		ok    bool
		want  string
	}{
		{name: "fragment of display number", input: "1234", ok: true, want: "ORD-1234"},
		{name: "extra characters around number", input: "#ORD-1234 ครับ", ok: true, want: "ORD-1234"},
		{name: "display number inside input", input: "หมายเลข 12345", ok: true, want: "12345"},
		{name: "full number with hash", input: "#12345", ok: true, want: "12345"},
		{name: "case folded", input: "ord-1234", ok: true, want: "ORD-1234"},
		{name: "whole display number", input: "ORD-1234", ok: true, want: "ORD-1234"},
		{name: "no match", input: "9999", ok: false},
		{name: "blank", input: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			order, ok := resolveOrder(tt.input, orders)
			if ok != tt.ok {
				t.Fatalf("resolveOrder(%q): expected ok=%v, got %v", tt.input, tt.ok, ok)
			}
			if ok && order.OrderNumber != tt.want {
				t.Errorf("expected order %q, got %q", tt.want, order.OrderNumber)
			}
		})
	}
}

func TestResolveOrderUserTextContainsDisplayNumber(t *testing.T) {
	t.Parallel()

	// The reverse direction: the order's display number is a substring of
	// what the user typed.
	orders := []domain.Order{{OrderNumber: "1234"}}
	order, ok := resolveOrder("#1234", orders)
	if !ok {
		t.Fatal("expected a match when input contains the display number")
	}
	if order.OrderNumber != "1234" {
		t.Fatalf("expected order 1234, got %q", order.OrderNumber)
	}
}

func TestResolveOrderFirstMatchWins(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		{ID: "recent", OrderNumber: "ORD-100"},
		{ID: "older", OrderNumber: "ORD-1001"},
	}
	order, ok := resolveOrder("100", orders)
	if !ok {
		t.Fatal("expected a match")
	}
	if order.ID != "recent" {
		t.Fatalf("expected first (most recent) match, got %q", order.ID)
	}
}

func TestOrderSummaryFormat(t *testing.T) {
	t.Parallel()

	orders := testOrders()
	summary := orderSummary(&orders[0])

	for _, want := range []string{
		"คำสั่งซื้อ ORD-1234",
		"วันที่สั่งซื้อ: 2 มิถุนายน 2567",
		"ยอดรวม: 12590.00 บาท",
		"สถานะคำสั่งซื้อ: จัดส่งแล้ว",
		"สถานะการชำระเงิน: ชำระเงินแล้ว",
		"1. RTX 4060 Ti x1",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestFormatThaiDateUsesBuddhistEra(t *testing.T) {
	t.Parallel()

	got := formatThaiDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if got != "2 มกราคม 2569" {
		t.Fatalf("expected \"2 มกราคม 2569\", got %q", got)
	}
}

func TestStatusLabelsFallBackToRawValue(t *testing.T) {
	t.Parallel()

	if got := orderStatusLabel("weird"); got != "weird" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
	if got := paymentStatusLabel("weird"); got != "weird" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
