package render

// BlockKind identifies the role of a block in the output document.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindBullet    BlockKind = "bullet"
	KindSpacer    BlockKind = "spacer"
)

// Block is one styled unit of output.
type Block struct {
	Section string    `json:"section"`
	Kind    BlockKind `json:"kind"`
	Text    string    `json:"text"`
	Style   Style     `json:"style"`
}

// RenderedDocument is the ordered block sequence produced by Render.
type RenderedDocument struct {
	Blocks []Block `json:"blocks"`
}

// Sections returns the distinct section ids in emission order.
func (d RenderedDocument) Sections() []string {
	var out []string
	for _, b := range d.Blocks {
		if len(out) == 0 || out[len(out)-1] != b.Section {
			out = append(out, b.Section)
		}
	}
	return out
}

// SectionBlocks returns the blocks emitted for one section.
func (d RenderedDocument) SectionBlocks(section string) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Section == section {
			out = append(out, b)
		}
	}
	return out
}

type builder struct {
	section string
	blocks  []Block
}

func (b *builder) add(kind BlockKind, text string, style Style) {
	b.blocks = append(b.blocks, Block{
		Section: b.section,
		Kind:    kind,
		Text:    text,
		Style:   style,
	})
}

func (b *builder) heading(text string) {
	b.add(KindHeading, text, StyleMap["sectionHeading"])
}

func (b *builder) paragraph(text string, style string) {
	b.add(KindParagraph, text, StyleMap[style])
}

func (b *builder) bullet(text string) {
	b.add(KindBullet, text, StyleMap["bullet"])
}

func (b *builder) spacer() {
	b.add(KindSpacer, "", StyleMap["spacer"])
}
