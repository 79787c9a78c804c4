// Package dictionary holds the immutable lookup tables used by the
// extractors and the QR parser: the vendor brand list, the category keyword
// buckets, the payment-method table and the QR key vocabulary.
//
// Tables are loaded once at process start and never mutated afterwards, so
// they are safe to share across concurrent extractions without locking.
package dictionary

// VendorBrand is one known chain. Variants list the strings that identify
// the brand in OCR text, including common single-character misreads; Name
// is the canonical display form.
type VendorBrand struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// CategoryBucket maps a category to its trigger keywords. Buckets are
// ordered; the first bucket with any keyword hit wins.
type CategoryBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// PaymentMethod maps a canonical payment method to its trigger keywords.
// The table is ordered with brand card networks before generic tokens so
// "visa" never resolves to plain "card".
type PaymentMethod struct {
	Method   string   `yaml:"method"`
	Keywords []string `yaml:"keywords"`
}

// Dictionary bundles every lookup table.
type Dictionary struct {
	Vendors    []VendorBrand    `yaml:"vendors"`
	Categories []CategoryBucket `yaml:"categories"`
	Payments   []PaymentMethod  `yaml:"payments"`
	// QRKeys maps a lowercased payload key in any supported language to a
	// canonical field name.
	QRKeys map[string]string `yaml:"qr_keys"`
}

// Default returns the built-in tables. Deployments can override individual
// tables through YAML files, see Load.
func Default() *Dictionary {
	return &Dictionary{
		Vendors:    defaultVendors(),
		Categories: defaultCategories(),
		Payments:   defaultPayments(),
		QRKeys:     defaultQRKeys(),
	}
}

func defaultVendors() []VendorBrand {
	return []VendorBrand{
		// Grocery
		{Name: "Rewe", Variants: []string{"REWE", "REVVE", "REWF"}},
		{Name: "Edeka", Variants: []string{"EDEKA"}},
		{Name: "Aldi", Variants: []string{"ALDI", "A1DI", "ALDI SUD", "ALDI NORD"}},
		{Name: "Lidl", Variants: []string{"LIDL", "L1DL"}},
		{Name: "Kaufland", Variants: []string{"KAUFLAND"}},
		{Name: "Penny", Variants: []string{"PENNY MARKT", "PENNY"}},
		{Name: "Netto", Variants: []string{"NETTO"}},
		{Name: "Migros", Variants: []string{"MIGROS", "M1GROS", "MIGROLINO"}},
		{Name: "Coop", Variants: []string{"COOP", "C00P"}},
		{Name: "Denner", Variants: []string{"DENNER"}},
		{Name: "Carrefour", Variants: []string{"CARREFOUR", "CARREFOURSA", "كارفور", "家乐福"}},
		{Name: "Auchan", Variants: []string{"AUCHAN"}},
		{Name: "Monoprix", Variants: []string{"MONOPRIX"}},
		{Name: "Tesco", Variants: []string{"TESCO"}},
		{Name: "Sainsbury's", Variants: []string{"SAINSBURY"}},
		{Name: "Walmart", Variants: []string{"WALMART", "沃尔玛"}},
		{Name: "Costco", Variants: []string{"COSTCO"}},
		{Name: "Bim", Variants: []string{"BIM BIRLESIK", " BIM "}},
		{Name: "A101", Variants: []string{"A101", "A1O1"}},
		{Name: "Sok", Variants: []string{"SOK MARKET"}},
		{Name: "E-Mart", Variants: []string{"EMART", "E-MART", "이마트"}},
		{Name: "Lotte Mart", Variants: []string{"LOTTE MART", "롯데마트"}},
		{Name: "Homeplus", Variants: []string{"HOMEPLUS", "홈플러스"}},
		{Name: "GS25", Variants: []string{"GS25"}},
		{Name: "Panda", Variants: []string{"بنده", "PANDA RETAIL"}},
		{Name: "Othaim", Variants: []string{"العثيم", "OTHAIM"}},
		{Name: "Lulu", Variants: []string{"LULU HYPERMARKET", "لولو"}},
		// Drugstores / health
		{Name: "Dm", Variants: []string{"DM-DROGERIE", "DM DROGERIE"}},
		{Name: "Rossmann", Variants: []string{"ROSSMANN"}},
		// Restaurants
		{Name: "McDonald's", Variants: []string{"MCDONALD", "MC DONALD", "麦当劳", "맥도날드", "ماكدونالدز"}},
		{Name: "Burger King", Variants: []string{"BURGER KING", "BURGERKING"}},
		{Name: "KFC", Variants: []string{"KFC"}},
		{Name: "Starbucks", Variants: []string{"STARBUCKS", "스타벅스", "星巴克", "ستاربكس"}},
		{Name: "Subway", Variants: []string{"SUBWAY"}},
		{Name: "Domino's", Variants: []string{"DOMINO'S", "DOMINOS"}},
		// Fuel
		{Name: "Shell", Variants: []string{"SHELL"}},
		{Name: "BP", Variants: []string{" BP ", "BP TANKSTELLE"}},
		{Name: "Aral", Variants: []string{"ARAL"}},
		{Name: "Esso", Variants: []string{"ESSO"}},
		{Name: "TotalEnergies", Variants: []string{"TOTALENERGIES", "TOTAL ENERGIES"}},
		{Name: "Opet", Variants: []string{"OPET"}},
		{Name: "Petrol Ofisi", Variants: []string{"PETROL OFISI"}},
		// Electronics
		{Name: "MediaMarkt", Variants: []string{"MEDIA MARKT", "MEDIAMARKT"}},
		{Name: "Saturn", Variants: []string{"SATURN"}},
		{Name: "Fnac", Variants: []string{"FNAC"}},
		{Name: "Darty", Variants: []string{"DARTY"}},
		{Name: "Teknosa", Variants: []string{"TEKNOSA"}},
		{Name: "Best Buy", Variants: []string{"BEST BUY", "BESTBUY"}},
		// Clothing
		{Name: "H&M", Variants: []string{"H&M", "H & M"}},
		{Name: "Zara", Variants: []string{"ZARA"}},
		{Name: "C&A", Variants: []string{"C&A"}},
		{Name: "Uniqlo", Variants: []string{"UNIQLO", "ユニクロ"}},
		{Name: "Primark", Variants: []string{"PRIMARK"}},
		{Name: "LC Waikiki", Variants: []string{"LC WAIKIKI", "LCWAIKIKI"}},
		// Furniture / misc retail
		{Name: "Ikea", Variants: []string{"IKEA"}},
		{Name: "Manor", Variants: []string{"MANOR"}},
		{Name: "Interdiscount", Variants: []string{"INTERDISCOUNT"}},
	}
}

func defaultCategories() []CategoryBucket {
	return []CategoryBucket{
		{Name: "food", Keywords: []string{
			"restaurant", "pizzeria", "cafe", "kebab", "sushi", "burger",
			"bistro", "imbiss", "lokanta", "식당", "餐厅", "مطعم",
		}},
		{Name: "grocery", Keywords: []string{
			"rewe", "edeka", "aldi", "lidl", "kaufland", "penny", "netto",
			"migros", "coop", "denner", "carrefour", "tesco", "walmart",
			"supermarkt", "supermarket", "market", "마트", "超市", "بقالة",
		}},
		{Name: "transport", Keywords: []string{
			"sbb", "cff", "deutsche bahn", "db fernverkehr", "metro",
			"taxi", "uber", "bolt", "bus", "tram", "bahn", "ticket",
			"지하철", "地铁", "مواصلات",
		}},
		{Name: "fuel", Keywords: []string{
			"shell", "aral", "esso", "totalenergies", "opet", "petrol ofisi",
			"tankstelle", "benzin", "diesel", "fuel", "akaryakit",
			"주유소", "加油站", "وقود",
		}},
		{Name: "hotel", Keywords: []string{
			"hotel", "hostel", "motel", "pension", "resort", "booking",
			"airbnb", "호텔", "酒店", "فندق",
		}},
		{Name: "health", Keywords: []string{
			"apotheke", "pharmacy", "pharmacie", "eczane", "drogerie",
			"rossmann", "clinic", "praxis", "hospital", "약국", "药店", "صيدلية",
		}},
		{Name: "electronics", Keywords: []string{
			"media markt", "mediamarkt", "saturn", "fnac", "darty",
			"teknosa", "best buy", "elektronik", "electronics", "전자", "电子",
		}},
		{Name: "clothing", Keywords: []string{
			"h&m", "zara", "c&a", "uniqlo", "primark", "lc waikiki",
			"textil", "clothing", "boutique", "giyim", "의류", "服装", "ملابس",
		}},
	}
}

func defaultPayments() []PaymentMethod {
	return []PaymentMethod{
		// Brand networks first: "visa" must never resolve to plain "card".
		{Method: "visa", Keywords: []string{"visa"}},
		{Method: "mastercard", Keywords: []string{"mastercard", "master card", "maestro"}},
		{Method: "amex", Keywords: []string{"american express", "amex"}},
		{Method: "twint", Keywords: []string{"twint"}},
		{Method: "paypal", Keywords: []string{"paypal"}},
		{Method: "apple_pay", Keywords: []string{"apple pay"}},
		{Method: "google_pay", Keywords: []string{"google pay"}},
		{Method: "card", Keywords: []string{
			"kreditkarte", "credit card", "debit card", "ec-karte", "girocard",
			"kredi karti", "banka karti", "카드", "刷卡", "بطاقة", "carte",
		}},
		{Method: "cash", Keywords: []string{
			"bar bezahlt", "bargeld", "cash", "nakit", "espèces", "especes",
			"현금", "现金", "نقد",
		}},
		{Method: "transfer", Keywords: []string{
			"überweisung", "uberweisung", "bank transfer", "havale", "virement",
			"이체", "转账", "تحويل",
		}},
	}
}

func defaultQRKeys() map[string]string {
	return map[string]string{
		// total
		"total": "total", "amount": "total", "amt": "total", "sum": "total",
		"tutar": "total", "toplam": "total", "betrag": "total", "summe": "total",
		"montant": "total", "합계": "total", "총액": "total", "금액": "total",
		"金额": "total", "总额": "total", "المجموع": "total", "الاجمالي": "total",
		// date
		"date": "date", "datum": "date", "tarih": "date", "fecha": "date",
		"일자": "date", "날짜": "date", "日期": "date", "التاريخ": "date",
		// time
		"time": "time", "uhrzeit": "time", "saat": "time",
		"시간": "time", "时间": "time", "الوقت": "time",
		// vendor
		"vendor": "vendor", "merchant": "vendor", "store": "vendor",
		"shop": "vendor", "firma": "vendor", "satici": "vendor",
		"magaza": "vendor", "상호": "vendor", "商户": "vendor",
		"التاجر": "vendor", "البائع": "vendor",
		// invoice number
		"invoice": "invoice_number", "invoiceno": "invoice_number",
		"invoice_no": "invoice_number", "no": "invoice_number",
		"nr": "invoice_number", "rechnungsnummer": "invoice_number",
		"fisno": "invoice_number", "fis_no": "invoice_number",
		"belegnr": "invoice_number", "번호": "invoice_number",
		"发票号": "invoice_number", "رقم": "invoice_number",
		// vat rate
		"vatrate": "vat_rate", "vat_rate": "vat_rate", "taxrate": "vat_rate",
		"kdvoran": "vat_rate", "mwstsatz": "vat_rate",
		// vat amount
		"vat": "vat_amount", "tax": "vat_amount", "kdv": "vat_amount",
		"mwst": "vat_amount", "tva": "vat_amount", "부가세": "vat_amount",
		"税额": "vat_amount", "الضريبة": "vat_amount",
	}
}
