package culture

import "fmt"

// FallbackAdaptation wraps the original message in the hard-coded template
// for the given context. This is the terminal step of the adaptation chain
// and must stay byte-stable: tests assert the exact output.
func FallbackAdaptation(contextID, message string) string {
	switch contextID {
	case "tagalog-rural":
		return fmt.Sprintf("Mahalagang paalala tungkol sa inyong kalusugan: %s\n\nPakisuyo, kumonsulta sa inyong doktor.", message)
	case "thai-low-literacy":
		return fmt.Sprintf("คำแนะนำสำคัญเกี่ยวกับสุขภาพ: %s\n\nโปรดปรึกษาแพทย์", message)
	case "khmer-indigenous":
		return fmt.Sprintf("ការណែនាំសំខាន់អំពីសុខភាព: %s\n\nសូមពិគ្រោះជាមួយវេជ្ជបណ្ឌិត", message)
	case "vietnamese-elderly":
		return fmt.Sprintf("Lời khuyên quan trọng về sức khỏe: %s\n\nXin hãy tham khảo ý kiến bác sĩ", message)
	case "malay-traditional":
		return fmt.Sprintf("Nasihat penting mengenai kesihatan: %s\n\nSila rujuk doktor", message)
	default:
		return fmt.Sprintf("Important health advice: %s\n\nPlease consult with your doctor.", message)
	}
}

// contextForLanguage picks the fallback table to use when only a target
// language code is known. English and any unlisted code map to the Malay
// tables, the default audience.
func contextForLanguage(code string) string {
	switch code {
	case "tl":
		return "tagalog-rural"
	case "th":
		return "thai-low-literacy"
	case "km":
		return "khmer-indigenous"
	case "vi":
		return "vietnamese-elderly"
	default:
		return "malay-traditional"
	}
}

type conceptSet struct {
	KeyTerms     []string
	Concepts     []string
	Instructions []string
}

var fallbackConcepts = map[string]conceptSet{
	"tagalog-rural": {
		KeyTerms:     []string{"gamot", "doktor", "ospital", "sakit", "lunas"},
		Concepts:     []string{"Pangangalaga ng kalusugan", "Pagsunod sa gamot", "Regular na checkup"},
		Instructions: []string{"Uminom ng gamot ayon sa tagubilin", "Makipag-ugnayan sa doktor kung may tanong"},
	},
	"thai-low-literacy": {
		KeyTerms:     []string{"ยา", "หมอ", "โรงพยาบาล", "อาการ", "การรักษา"},
		Concepts:     []string{"การดูแลสุขภาพ", "การทานยา", "การตรวจสุขภาพ"},
		Instructions: []string{"ทานยาตามแพทย์สั่ง", "ติดต่อแพทย์หากมีข้อสงสัย"},
	},
	"khmer-indigenous": {
		KeyTerms:     []string{"ថ្នាំ", "វេជ្ជបណ្ឌិត", "មន្ទីរពេទ្យ", "រោគសញ្ញា", "ការព្យាបាល"},
		Concepts:     []string{"ការថែទាំសុខភាព", "ការញ៉ាំថ្នាំ", "ការពិនិត្យសុខភាព"},
		Instructions: []string{"ញ៉ាំថ្នាំតាមការណែនាំ", "ទាក់ទងវេជ្ជបណ្ឌិតប្រសិនបើមានសំណួរ"},
	},
	"vietnamese-elderly": {
		KeyTerms:     []string{"thuốc", "bác sĩ", "bệnh viện", "triệu chứng", "điều trị"},
		Concepts:     []string{"Chăm sóc sức khỏe", "Uống thuốc đúng cách", "Khám sức khỏe định kỳ"},
		Instructions: []string{"Uống thuốc theo chỉ định", "Liên hệ bác sĩ nếu có thắc mắc"},
	},
	"malay-traditional": {
		KeyTerms:     []string{"ubat", "doktor", "hospital", "simptom", "rawatan"},
		Concepts:     []string{"Penjagaan kesihatan", "Pengambilan ubat", "Pemeriksaan kesihatan"},
		Instructions: []string{"Ambil ubat mengikut arahan", "Hubungi doktor jika ada pertanyaan"},
	},
}

// FallbackConcepts returns the static key-term/concept/instruction set for a
// target language when no provider can perform structured extraction.
func FallbackConcepts(languageCode string) (keyTerms, concepts, instructions []string) {
	set := fallbackConcepts[contextForLanguage(languageCode)]
	return append([]string(nil), set.KeyTerms...),
		append([]string(nil), set.Concepts...),
		append([]string(nil), set.Instructions...)
}

var fallbackActionItems = map[string][]string{
	"tagalog-rural": {
		"Makipag-ugnayan sa inyong doktor para sa personal na payo",
		"Sundin ang mga tagubilin sa paginom ng gamot",
		"Magtakda ng regular na appointment para sa follow-up",
		"Bantayan ang mga sintomas at iulat ang mga pagbabago",
		"Makipag-ugnayan sa inyong pamilya tungkol sa treatment plan",
	},
	"thai-low-literacy": {
		"ปรึกษาแพทย์เพื่อรับคำแนะนำส่วนบุคคล",
		"ทานยาตามที่แพทย์สั่ง",
		"นัดหมายแพทย์เป็นประจำ",
		"สังเกตอาการและรายงานการเปลี่ยนแปลง",
		"ขอให้ครอบครัวช่วยจำรายละเอียดการรักษา",
	},
	"khmer-indigenous": {
		"ពិគ្រោះជាមួយវេជ្ជបណ្ឌិតសម្រាប់ការណែនាំផ្ទាល់ខ្លួន",
		"ញ៉ាំថ្នាំតាមការណែនាំ",
		"កត់ត្រានៅវេជ្ជបណ្ឌិតជាទៀងទាត់",
		"សង្កេតមើលរោគសញ្ញានិងរាយការណ៍ការផ្លាស់ប្តូរ",
		"ពិភាក្សាជាមួយគ្រួសារអំពីផែនការព្យាបាល",
	},
	"vietnamese-elderly": {
		"Tham khảo ý kiến bác sĩ để nhận tư vấn cá nhân",
		"Uống thuốc theo đúng chỉ định",
		"Đặt lịch tái khám định kỳ",
		"Theo dõi các triệu chứng và báo cáo thay đổi",
		"Thảo luận với gia đình về kế hoạch điều trị",
	},
	"malay-traditional": {
		"Rujuk doktor untuk nasihat peribadi",
		"Ikut arahan pengambilan ubat",
		"Buat temujanji susulan berkala",
		"Pantau simptom dan laporkan perubahan",
		"Berbincang dengan keluarga mengenai rancangan rawatan",
	},
}

// FallbackActionItems returns the static action-item list for a context.
func FallbackActionItems(contextID string) []string {
	if items, ok := fallbackActionItems[contextID]; ok {
		return append([]string(nil), items...)
	}
	return []string{
		"Rujuk doktor untuk maklumat lanjut",
		"Ikut semua arahan perubatan",
		"Pantau kesihatan dengan kerap",
	}
}
