// Package catalog exposes the fixed product list the oracle recommends from.
package catalog

import "mystica/pkg/models"

// Repository is a read-only accessor over the static catalog.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// All returns every product in declaration order. Callers must not mutate the
// returned slice elements; a fresh slice header is returned each call.
func (r *Repository) All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

var products = []models.Product{
	{
		NameThai:      "นมผงดัดแปลงตราไฮคิว 1 พลัส ซูเปอร์โกลด์",
		NameEnglish:   "Hi-Q 1 Plus Super Gold Formula",
		PromotionThai: "ลดสูงสุด 10% (เมื่อซื้อสินค้ากลุ่มนมผงไฮคิวที่ร่วมรายการ)",
		Attributes:    []string{"Super Gold", "เสริมธาตุเหล็ก"},
		PrimaryColor:  "Gold",
	},
	{
		NameThai:         "โฟร์โมสต์ นมยูเอชที",
		NameEnglish:      "Foremost UHT Milk",
		QuantitySizeThai: "225 มล. (แพ็ค 6)",
		Attributes:       []string{"รสช็อกโกแลต (example flavor)"},
		PrimaryColor:     "Brown (for chocolate variant)",
	},
	{
		NameThai:          "โอวัลติน ยูเอชที",
		NameEnglish:       "Ovaltine UHT",
		PriceBaht:         45.00,
		OriginalPriceBaht: 48.00,
		QuantitySizeThai:  "170/180 มล. (แพ็ค 4)",
		Attributes:        []string{"Ovaltine", "Chocolate Malt"},
		PrimaryColor:      "Orange",
	},
	{
		NameThai:          "ไวตามิ้ลค์ นมถั่วเหลือง ยูเอชที",
		NameEnglish:       "Vitamilk Soy Milk UHT",
		PriceBaht:         40.00,
		OriginalPriceBaht: 42.00,
		QuantitySizeThai:  "180 มล. (แพ็ค 3)",
		Attributes:        []string{"Soy", " งาดำและข้าวสีนิล (for To Go variant)"},
		PrimaryColor:      "Yellow",
	},
	{
		NameThai:          "นมยูเอชที ตราหมีโกลด์",
		NameEnglish:       "Bear Brand Gold UHT Milk",
		PriceBaht:         69.00,
		OriginalPriceBaht: 78.00,
		PromotionThai:     "ประหยัด 9.-",
		QuantitySizeThai:  "180 มล. (แพ็ค 4)",
		Attributes:        []string{"Gold", "รสจืด (Plain)"},
		PrimaryColor:      "Gold",
	},
	{
		NameThai:          "ดีน่ากาบา นมถั่วเหลือง",
		NameEnglish:       "Dna GABA Soy Milk",
		PriceBaht:         225.00,
		OriginalPriceBaht: 232.00,
		PromotionThai:     "2 คุ้มกว่า",
		QuantitySizeThai:  "จมูกข้าวญี่ปุ่น 1,000 มล. (แพ็คคู่)",
		Attributes:        []string{"GABA", "Soy", "จมูกข้าวญี่ปุ่น"},
		PrimaryColor:      "Green",
	},
	{
		NameThai:         "แอนมัม มาเทอร์น่า นมยูเอชที",
		NameEnglish:      "Anmum Materna UHT Milk",
		PriceBaht:        350.00,
		PromotionThai:    "ซื้อ 11 ฟรี 1",
		QuantitySizeThai: "180 มล. (แพ็ค 3) (ซื้อ 12)",
		Attributes:       []string{"Materna", "For Mothers"},
		PrimaryColor:     "Pink",
	},
	{
		NameThai:          "แอนลีน มอฟแม็กซ์ นมยูเอชที",
		NameEnglish:       "Anlene MovMax UHT Milk",
		PriceBaht:         354.00,
		OriginalPriceBaht: 399.00,
		PromotionThai:     "ประหยัด 45.-",
		QuantitySizeThai:  "180 มล. (ลัง 4x9)",
		Attributes:        []string{"MovMax", "Mobility"},
		PrimaryColor:      "Blue",
	},
	{
		NameThai:         "เอนชัวร์ โกลด์ แพลนท์เบส กลิ่นอัลมอนด์",
		NameEnglish:      "Ensure Gold Plant-Based Almond Flavor",
		PriceBaht:        969.00,
		QuantitySizeThai: "ขนาด 800 กรัม",
		Attributes:       []string{"Ensure Gold", "Plant-Based", "Almond Flavor"},
		PrimaryColor:     "Green",
	},
	{
		NameThai:          "กลูเซอนา เอสอาร์ ทริปเปิ้ลแคร์",
		NameEnglish:       "Glucerna SR Triple Care",
		PriceBaht:         685.00,
		OriginalPriceBaht: 737.00,
		PromotionThai:     "ประหยัด 52.-",
		QuantitySizeThai:  "ขนาด 380 กรัม",
		Attributes:        []string{"Glucerna SR", "Triple Care", "Diabetes Nutrition"},
		PrimaryColor:      "Blue",
	},
	{
		NameThai:          "โอ๊ตช็อคโก",
		NameEnglish:       "OAT CHOCO",
		PriceBaht:         26.00,
		OriginalPriceBaht: 30.00,
		PromotionThai:     "ประหยัด 4.-",
		Attributes:        []string{"Oat", "Chocolate"},
		PrimaryColor:      "Brown",
	},
	{
		NameThai:          "เวสต้า เครื่องดื่มธัญญาหาร",
		NameEnglish:       "Vesta Cereal Drink",
		PriceBaht:         42.00,
		OriginalPriceBaht: 45.00,
		PromotionThai:     "ประหยัด 3.-",
		QuantitySizeThai:  "22 กรัม (แพ็ค5)",
		Attributes:        []string{"Cereal", "Strawberry (flavor shown)"},
		PrimaryColor:      "Red",
	},
	{
		NameThai:          "ไวตามิ้ลค์ ทูโกอินแบล็ค",
		NameEnglish:       "Vitamilk To Go In Black",
		PriceBaht:         79.00,
		OriginalPriceBaht: 88.00,
		PromotionThai:     "ประหยัด 9.-",
		QuantitySizeThai:  "300 มล. (แพ็ค 4)",
		Attributes:        []string{"To Go", "In Black", "งาดำ", "ข้าวสีนิล"},
		PrimaryColor:      "Black",
	},
}
