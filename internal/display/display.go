// Package display maps closed enum values to the labels, color classes and
// icon tags rendered by the dashboard. Every resolver is total: unknown input
// yields the neutral fallback instead of an error.
package display

// Color classes shared by badges and severity bars.
const (
	ColorGreen  = "bg-green-100 text-green-800"
	ColorYellow = "bg-yellow-100 text-yellow-800"
	ColorRed    = "bg-red-100 text-red-800"
	ColorBlue   = "bg-blue-100 text-blue-800"
	ColorGray   = "bg-gray-100 text-gray-800"
)

// FallbackLabel is shown for any value outside the known domain.
const FallbackLabel = "—"

// ClassificationDisplay is the badge for a recipient's economic classification.
type ClassificationDisplay struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
	IconTag    string `json:"iconTag"`
}

// StatusDisplay is the badge for a status value.
type StatusDisplay struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
}

var classifications = map[string]ClassificationDisplay{
	"well-off": {Label: "Mampu", ColorClass: ColorGreen, IconTag: "trending-up"},
	"middle":   {Label: "Menengah", ColorClass: ColorYellow, IconTag: "scale"},
	"poor":     {Label: "Miskin", ColorClass: ColorRed, IconTag: "trending-down"},
}

var classificationFallback = ClassificationDisplay{Label: FallbackLabel, ColorClass: ColorGray, IconTag: "currency"}

var recipientStatuses = map[string]StatusDisplay{
	"active":    {Label: "Aktif", ColorClass: ColorGreen},
	"inactive":  {Label: "Tidak Aktif", ColorClass: ColorGray},
	"suspended": {Label: "Ditangguhkan", ColorClass: ColorRed},
}

var transactionStatuses = map[string]StatusDisplay{
	"completed": {Label: "Selesai", ColorClass: ColorGreen},
	"pending":   {Label: "Menunggu", ColorClass: ColorYellow},
	"failed":    {Label: "Gagal", ColorClass: ColorRed},
}

var statusFallback = StatusDisplay{Label: FallbackLabel, ColorClass: ColorGray}

// ResolveClassification maps a recipient classification to its label, color and icon.
func ResolveClassification(value string) ClassificationDisplay {
	if d, ok := classifications[value]; ok {
		return d
	}
	return classificationFallback
}

// ResolveRecipientStatus maps a recipient status to its label and color.
func ResolveRecipientStatus(value string) StatusDisplay {
	if d, ok := recipientStatuses[value]; ok {
		return d
	}
	return statusFallback
}

// ResolveTransactionStatus maps a transaction status to its label and color.
func ResolveTransactionStatus(value string) StatusDisplay {
	if d, ok := transactionStatuses[value]; ok {
		return d
	}
	return statusFallback
}

// ResolveActiveStatus returns the color class for a merchant's active flag.
func ResolveActiveStatus(active bool) string {
	if active {
		return ColorGreen
	}
	return ColorRed
}

// ActiveLabel is the text shown next to ResolveActiveStatus.
func ActiveLabel(active bool) string {
	if active {
		return "Aktif"
	}
	return "Nonaktif"
}

// ResolveActive combines ResolveActiveStatus and ActiveLabel.
func ResolveActive(active bool) StatusDisplay {
	return StatusDisplay{Label: ActiveLabel(active), ColorClass: ResolveActiveStatus(active)}
}
