package models

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the visible conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserProfile holds everything the oracle has learned about the seeker.
// Fields are independently optional; empty string means "not yet known".
type UserProfile struct {
	Name                 string `json:"name,omitempty"`
	DateOfBirth          string `json:"date_of_birth,omitempty"`
	HandprintAnalysis    string `json:"handprint_analysis,omitempty"`
	HandprintImageBase64 string `json:"handprint_image_base64,omitempty"`
}

// ExtractedInfo is the structured-output shape the extraction model is
// constrained to. Produced once per extraction call and folded into the
// profile immediately.
type ExtractedInfo struct {
	UserName          string `json:"user_name,omitempty"`
	UserDOB           string `json:"user_dob,omitempty"`
	HandprintAnalysis string `json:"handprint_analysis,omitempty"`
}

// Merge folds extracted values into the profile. Newly extracted non-empty
// values win; the handprint image is never touched by extraction.
func (p UserProfile) Merge(e ExtractedInfo) UserProfile {
	out := p
	if e.UserName != "" {
		out.Name = e.UserName
	}
	if e.UserDOB != "" {
		out.DateOfBirth = e.UserDOB
	}
	if e.HandprintAnalysis != "" {
		out.HandprintAnalysis = e.HandprintAnalysis
	}
	return out
}

// FortuneContext is the transient bundle used to build one generation prompt.
type FortuneContext struct {
	UserProfile       UserProfile `json:"user_profile"`
	LatestMessage     string      `json:"latest_message"`
	ColorAssociations []string    `json:"color_associations,omitempty"`
}

// Product is one catalog record. Immutable after startup.
type Product struct {
	NameThai          string   `json:"name_thai"`
	NameEnglish       string   `json:"name_english"`
	PriceBaht         float64  `json:"price_baht,omitempty"`
	OriginalPriceBaht float64  `json:"original_price_baht,omitempty"`
	PromotionThai     string   `json:"promotion_thai,omitempty"`
	QuantitySizeThai  string   `json:"quantity_size_thai,omitempty"`
	Attributes        []string `json:"attributes,omitempty"`
	PrimaryColor      string   `json:"primary_color"`
}

// Recommendation pairs a matched product with its generated justification.
type Recommendation struct {
	Product Product `json:"product"`
	Reason  string  `json:"reason"`
}
