package gateway

import (
	"fmt"
	"strings"

	"github.com/chaiwat/pcnova/internal/domain"
)

// historyWindow caps how many prior turns are included in a general prompt.
const historyWindow = 10

const (
	roleLabelUser      = "ลูกค้า:"
	roleLabelAssistant = "ผู้ช่วย:"

	unspecified = "ไม่ระบุ"
)

const generalPersona = `คุณคือผู้ช่วยฝ่ายบริการลูกค้าของร้าน PCNova ร้านจำหน่ายอุปกรณ์และชิ้นส่วนคอมพิวเตอร์ครบวงจร
หน้าที่ของคุณคือตอบคำถามเกี่ยวกับสินค้า อุปกรณ์คอมพิวเตอร์ การจัดสเปค และการบริการของร้าน
ตอบเป็นภาษาไทย สุภาพ เป็นกันเอง กระชับ และลงท้ายประโยคด้วย "ครับ"
หากลูกค้าถามเรื่องที่ไม่เกี่ยวกับร้านหรืออุปกรณ์คอมพิวเตอร์ ให้ชวนกลับมาคุยเรื่องสินค้าอย่างสุภาพ`

const upgradePersona = `คุณคือผู้เชี่ยวชาญด้านฮาร์ดแวร์คอมพิวเตอร์ของร้าน PCNova
ลูกค้าต้องการวิเคราะห์การอัปเกรดชิ้นส่วนคอมพิวเตอร์ ให้ตอบเป็นภาษาไทยโดยแบ่งคำตอบเป็น 5 หัวข้อตามลำดับนี้เท่านั้น:
1. สรุปสเปคใหม่หลังอัปเกรด
2. ความเข้ากันได้ของชิ้นส่วน (ซ็อกเก็ต ชนิดแรม กำลังไฟ และข้อควรระวัง)
3. ประเมินประสิทธิภาพการเล่นเกม โดยยกตัวอย่างเกม Valorant, GTA V, Cyberpunk 2077, Elden Ring และ Baldur's Gate 3 ที่ความละเอียด 1080p และ 1440p
4. ประสิทธิภาพงานทั่วไปและงานสร้างสรรค์ เช่น ตัดต่อวิดีโอ เรนเดอร์ 3D และสตรีมมิ่ง
5. คำแนะนำเพิ่มเติมและข้อเสนอแนะในการอัปเกรดครั้งถัดไป`

// componentLabels maps wire field names to the labels used in prompt text.
var componentLabels = map[string]string{
	"cpu":         "CPU",
	"motherboard": "เมนบอร์ด",
	"cpuCooler":   "ชุดระบายความร้อน CPU",
	"ram":         "แรม",
	"gpu":         "การ์ดจอ",
	"psu":         "พาวเวอร์ซัพพลาย",
}

// buildGeneralPrompt renders the general-support template: persona, up to the
// last ten turns oldest first, then the new user message.
func buildGeneralPrompt(req *ChatRequest) string {
	var b strings.Builder
	b.WriteString(generalPersona)

	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		b.WriteString("\n\nบทสนทนาก่อนหน้า:\n")
		for _, turn := range history {
			label := roleLabelUser
			if turn.IsBot {
				label = roleLabelAssistant
			}
			b.WriteString(label)
			b.WriteString(" ")
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(roleLabelUser)
	b.WriteString(" ")
	b.WriteString(req.Message)
	b.WriteString("\n")
	b.WriteString(roleLabelAssistant)
	return b.String()
}

// buildUpgradePrompt renders the upgrade-analysis template: persona, the
// original six-field spec block, and a single sentence naming the change.
func buildUpgradePrompt(req *ChatRequest) string {
	var b strings.Builder
	b.WriteString(upgradePersona)
	b.WriteString("\n\nสเปคปัจจุบันของลูกค้า:\n")
	for i := 1; i <= domain.ComponentCount; i++ {
		key := domain.Key(i)
		value := req.PCSpecs.Field(i)
		if value == "" {
			value = unspecified
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i, componentLabels[key], value)
	}

	oldValue := valueForKey(req.PCSpecs, req.UpgradedComponent)
	if oldValue == "" {
		oldValue = unspecified
	}
	label := componentLabels[req.UpgradedComponent]
	if label == "" {
		label = req.UpgradedComponent
	}
	fmt.Fprintf(&b, "\nลูกค้าต้องการเปลี่ยน %s จาก \"%s\" เป็น \"%s\"",
		label, oldValue, req.NewComponentValue)
	return b.String()
}

func valueForKey(spec *domain.PCSpec, key string) string {
	for i := 1; i <= domain.ComponentCount; i++ {
		if domain.Key(i) == key {
			return spec.Field(i)
		}
	}
	return ""
}
