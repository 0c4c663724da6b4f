// Package assist implements the customer-support conversation session: its
// state machine, step-by-step spec collection, selection parsing, and order
// inquiry. All user-visible text lives here, in Thai, matching the storefront.
package assist

import (
	"fmt"
	"strings"

	"github.com/chaiwat/pcnova/internal/domain"
)

// Quick-option IDs dispatched by the session controller.
const (
	OptionUpgrade     = "pc-upgrade"
	OptionOrderStatus = "order-status"
)

// cancelToken returns the user to the main menu from any non-normal state.
const cancelToken = "0"

// unspecified is shown for spec fields the customer left empty.
const unspecified = "ไม่ระบุ"

const (
	msgGreeting = "สวัสดีครับ ผมคือน้องโนวา ผู้ช่วยของร้าน PCNova ยินดีให้บริการครับ ต้องการให้ช่วยเรื่องใดครับ"

	msgCancelled = "ยกเลิกเรียบร้อยครับ มีอะไรให้ช่วยเพิ่มเติมไหมครับ"

	msgCancelHint = "พิมพ์ 0 เพื่อยกเลิกและกลับสู่เมนูหลักครับ"

	msgSelectionHelp = "ขออภัยครับ กรุณาพิมพ์หมายเลขชิ้นส่วน (1-6) ตามด้วยรุ่นใหม่ที่ต้องการ " +
		"เช่น \"5 RTX 4060 Ti\" หรือพิมพ์เฉพาะหมายเลขก่อนก็ได้ครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)"

	msgSignInRequired = "กรุณาเข้าสู่ระบบก่อนตรวจสอบสถานะคำสั่งซื้อครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)"

	msgNoOrders = "คุณยังไม่มีคำสั่งซื้อในระบบครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)"

	msgGatewayFailure = "ขออภัยครับ ระบบผู้ช่วยขัดข้องชั่วคราว กรุณาลองใหม่อีกครั้งครับ"

	msgOrderLookupFailure = "ขออภัยครับ ไม่สามารถดึงข้อมูลคำสั่งซื้อได้ในขณะนี้ กรุณาลองใหม่อีกครั้งครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)"
)

// component holds the Thai display name and two example values shown when
// prompting for each spec field.
type component struct {
	name     string
	examples [2]string
}

// components is 1-indexed via components[n-1]; order matches
// domain.ComponentKeys.
var components = [domain.ComponentCount]component{
	{name: "CPU", examples: [2]string{"Intel Core i5-12400F", "AMD Ryzen 5 5600"}},
	{name: "เมนบอร์ด", examples: [2]string{"MSI B660M Pro", "ASUS TUF Gaming B550M"}},
	{name: "ชุดระบายความร้อน CPU", examples: [2]string{"Deepcool AK400", "Thermalright Peerless Assassin 120"}},
	{name: "แรม", examples: [2]string{"Kingston Fury 16GB DDR4 3200", "Corsair Vengeance 32GB DDR5 5600"}},
	{name: "การ์ดจอ", examples: [2]string{"RTX 4060", "RX 6600"}},
	{name: "พาวเวอร์ซัพพลาย", examples: [2]string{"Corsair CV650 650W", "Antec CSK550 550W"}},
}

// mainMenuOptions are the quick options attached to menu messages.
func mainMenuOptions() []domain.QuickOption {
	return []domain.QuickOption{
		{ID: OptionUpgrade, Label: "ปรึกษาอัปเกรดสเปคคอม"},
		{ID: OptionOrderStatus, Label: "ตรวจสอบสถานะคำสั่งซื้อ"},
	}
}

// componentPrompt asks for the n-th spec field (1-indexed) with two examples
// and the cancellation reminder.
func componentPrompt(n int) string {
	c := components[n-1]
	return fmt.Sprintf("กรุณาระบุ%sของคุณครับ เช่น %s หรือ %s\n\n%s",
		c.name, c.examples[0], c.examples[1], msgCancelHint)
}

// componentAck acknowledges the n-th field being filled.
func componentAck(n int) string {
	return fmt.Sprintf("บันทึก%sเรียบร้อยครับ", components[n-1].name)
}

// specRecap renders the six-line recap plus the selection instruction.
func specRecap(draft *domain.PCSpec) string {
	var b strings.Builder
	b.WriteString("สเปคคอมพิวเตอร์ของคุณครับ\n")
	for i := 1; i <= domain.ComponentCount; i++ {
		value := draft.Field(i)
		if value == "" {
			value = unspecified
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i, components[i-1].name, value)
	}
	b.WriteString("\nต้องการอัปเกรดชิ้นส่วนหมายเลขใดครับ พิมพ์หมายเลข (1-6) ตามด้วยรุ่นใหม่ได้เลย ")
	b.WriteString("เช่น \"5 RTX 4060 Ti\" หรือพิมพ์เฉพาะหมายเลขก่อนก็ได้ครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)")
	return b.String()
}

// newValuePrompt asks for the replacement value of the n-th field only.
func newValuePrompt(n int) string {
	return fmt.Sprintf("ต้องการเปลี่ยน%sเป็นรุ่นใดครับ", components[n-1].name)
}

// orderListPrompt renders the customer's recent orders and asks which one to
// look up.
func orderListPrompt(orders []domain.Order) string {
	var b strings.Builder
	b.WriteString("คำสั่งซื้อล่าสุดของคุณครับ\n")
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, o.OrderNumber, orderStatusLabel(o.OrderStatus))
	}
	b.WriteString("\nกรุณาพิมพ์หมายเลขคำสั่งซื้อที่ต้องการตรวจสอบครับ (พิมพ์ 0 เพื่อกลับสู่เมนูหลัก)")
	return b.String()
}

// orderNotFound names the customer's input and invites a retry.
func orderNotFound(input string) string {
	return fmt.Sprintf("ไม่พบคำสั่งซื้อที่ตรงกับ \"%s\" ครับ กรุณาลองพิมพ์ใหม่อีกครั้ง หรือพิมพ์ 0 เพื่อกลับสู่เมนูหลัก", input)
}

var orderStatusLabels = map[string]string{
	domain.OrderStatusPending:    "รอดำเนินการ",
	domain.OrderStatusProcessing: "กำลังจัดเตรียมสินค้า",
	domain.OrderStatusShipped:    "จัดส่งแล้ว",
	domain.OrderStatusDelivered:  "จัดส่งสำเร็จ",
	domain.OrderStatusCancelled:  "ยกเลิกแล้ว",
}

var paymentStatusLabels = map[string]string{
	domain.PaymentStatusUnpaid:   "ยังไม่ชำระเงิน",
	domain.PaymentStatusPaid:     "ชำระเงินแล้ว",
	domain.PaymentStatusRefunded: "คืนเงินแล้ว",
}

func orderStatusLabel(status string) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}
	return status
}

func paymentStatusLabel(status string) string {
	if label, ok := paymentStatusLabels[status]; ok {
		return label
	}
	return status
}
