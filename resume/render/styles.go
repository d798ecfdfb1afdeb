package render

// Alignment is a paragraph justification.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// Style captures the paragraph and run formatting of one block. Only stable
// primitives are used: font, size, bold, italic, alignment and indentation.
type Style struct {
	Font         string    `json:"font"`
	SizePt       int       `json:"sizePt"`
	Bold         bool      `json:"bold,omitempty"`
	Italic       bool      `json:"italic,omitempty"`
	Align        Alignment `json:"align"`
	IndentTwips  int       `json:"indentTwips,omitempty"`
	HeadingLevel int       `json:"headingLevel,omitempty"`
}

const (
	BodyFont     = "Calibri"
	BodySize     = 11
	NameSize     = 22
	HeadingSize  = 13
	ContactSize  = 9
	MetaSize     = 10
	BulletIndent = 360
)

var bodyStyle = Style{Font: BodyFont, SizePt: BodySize, Align: AlignLeft}

// StyleMap centralizes the formatting of each resume element.
var StyleMap = map[string]Style{
	"name": {
		Font:         BodyFont,
		SizePt:       NameSize,
		Bold:         true,
		Align:        AlignCenter,
		HeadingLevel: 1,
	},
	"contact": {
		Font:   BodyFont,
		SizePt: ContactSize,
		Align:  AlignCenter,
	},
	"sectionHeading": {
		Font:         BodyFont,
		SizePt:       HeadingSize,
		Bold:         true,
		Align:        AlignLeft,
		HeadingLevel: 2,
	},
	"roleLine": {
		Font:   BodyFont,
		SizePt: BodySize,
		Bold:   true,
		Align:  AlignLeft,
	},
	"meta": {
		Font:   BodyFont,
		SizePt: MetaSize,
		Italic: true,
		Align:  AlignLeft,
	},
	"body":   bodyStyle,
	"spacer": bodyStyle,
	"bullet": {
		Font:        BodyFont,
		SizePt:      BodySize,
		Align:       AlignLeft,
		IndentTwips: BulletIndent,
	},
}
