package embedmsg

// Embed colors per media kind. Episodes use the show color.
const (
	ColorMovie  = 0x1abc9c
	ColorSeason = 0x3498db
	ColorShow   = 0xe67e22
)

// Field is one embed field.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Image is the embed image reference.
type Image struct {
	URL string `json:"url"`
}

// Footer is the embed footer line.
type Footer struct {
	Text string `json:"text"`
}

// Embed is a Discord embed object.
type Embed struct {
	Title       string  `json:"title"`
	Color       int     `json:"color"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	Image       *Image  `json:"image,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
}

// ratingLabels maps content-rating codes to German FSK labels. Unknown codes
// pass through unchanged.
var ratingLabels = map[string]string{
	"TV-Y":            "FSK 0",
	"TV-Y7":           "FSK 6",
	"TV-G":            "FSK 0",
	"TV-PG":           "FSK 6",
	"TV-14":           "FSK 12",
	"TV-MA":           "FSK 16",
	"PG":              "FSK 6",
	"PG-13":           "FSK 12",
	"R":               "FSK 16",
	"NC-17":           "FSK 18",
	"UR":              "Ungeprüft",
	"BPjM Restricted": "FSK 18+ (indiziert)",
	"de":              "FSK 0",
	"de/0":            "FSK 0",
	"de/6":            "FSK 6",
	"de/12":           "FSK 12",
	"de/12+":          "FSK 12+",
	"de/16":           "FSK 16",
	"de/18":           "FSK 18",
}

// RatingLabel translates a content-rating code to its German label.
func RatingLabel(code string) string {
	if label, ok := ratingLabels[code]; ok {
		return label
	}
	return code
}
