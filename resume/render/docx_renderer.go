package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// DocxMimeType is the media type of the serialized document.
	DocxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	bulletNumID = "1"
)

// Fixed so that equal documents serialize to identical bytes.
var zipModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	SectPr     wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	PPr  *wPPr  `xml:"w:pPr,omitempty"`
	Runs []wRun `xml:"w:r"`
}

type wPPr struct {
	PStyle *wVal   `xml:"w:pStyle,omitempty"`
	NumPr  *wNumPr `xml:"w:numPr,omitempty"`
	Ind    *wInd   `xml:"w:ind,omitempty"`
	Jc     *wVal   `xml:"w:jc,omitempty"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wNumPr struct {
	ILvl  wVal `xml:"w:ilvl"`
	NumID wVal `xml:"w:numId"`
}

type wInd struct {
	Left string `xml:"w:left,attr"`
}

type wRun struct {
	RPr  *wRPr `xml:"w:rPr,omitempty"`
	Text wText `xml:"w:t"`
}

type wRPr struct {
	Fonts  *wFonts   `xml:"w:rFonts,omitempty"`
	Bold   *struct{} `xml:"w:b,omitempty"`
	Italic *struct{} `xml:"w:i,omitempty"`
	Size   *wVal     `xml:"w:sz,omitempty"`
	SizeCs *wVal     `xml:"w:szCs,omitempty"`
}

type wFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type wSectPr struct {
	PgSz  wPgSz  `xml:"w:pgSz"`
	PgMar wPgMar `xml:"w:pgMar"`
}

type wPgSz struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type wPgMar struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

type docxPart struct {
	name    string
	content []byte
}

// EncodeDOCX serializes the document as a WordprocessingML package. The
// output is byte-identical for equal documents.
func EncodeDOCX(doc RenderedDocument) ([]byte, error) {
	documentXML, err := encodeDocumentXML(doc)
	if err != nil {
		return nil, formatError(err)
	}
	if err := validateDocumentXMLStructure(documentXML); err != nil {
		return nil, formatError(err)
	}

	parts := []docxPart{
		{name: "[Content_Types].xml", content: []byte(contentTypesXML)},
		{name: "_rels/.rels", content: []byte(rootRelsXML)},
		{name: "word/document.xml", content: documentXML},
		{name: "word/styles.xml", content: []byte(stylesXML())},
		{name: "word/numbering.xml", content: []byte(numberingXML)},
		{name: "word/_rels/document.xml.rels", content: []byte(documentRelsXML)},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, part.content); err != nil {
			return nil, formatError(fmt.Errorf("write %s: %w", part.name, err))
		}
	}
	if err := writer.Close(); err != nil {
		return nil, formatError(fmt.Errorf("close package: %w", err))
	}
	return output.Bytes(), nil
}

func encodeDocumentXML(doc RenderedDocument) ([]byte, error) {
	root := wDocument{
		XmlnsW: wmlNamespace,
		XmlnsR: relNamespace,
		Body: wBody{
			Paragraphs: make([]wParagraph, 0, len(doc.Blocks)),
			SectPr: wSectPr{
				PgSz:  wPgSz{W: "11906", H: "16838"},
				PgMar: wPgMar{Top: "1134", Right: "1134", Bottom: "1134", Left: "1134", Header: "709", Footer: "709", Gutter: "0"},
			},
		},
	}
	for i, block := range doc.Blocks {
		p, err := toParagraph(block)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, block.Section, err)
		}
		root.Body.Paragraphs = append(root.Body.Paragraphs, p)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(root); err != nil {
		return nil, fmt.Errorf("encode document.xml: %w", err)
	}
	return buf.Bytes(), nil
}

func toParagraph(block Block) (wParagraph, error) {
	ppr := &wPPr{}
	switch block.Kind {
	case KindHeading:
		if block.Style.HeadingLevel > 0 {
			ppr.PStyle = &wVal{Val: "Heading" + strconv.Itoa(block.Style.HeadingLevel)}
		}
	case KindBullet:
		ppr.PStyle = &wVal{Val: "ListBullet"}
		ppr.NumPr = &wNumPr{ILvl: wVal{Val: "0"}, NumID: wVal{Val: bulletNumID}}
	case KindParagraph, KindSpacer:
	default:
		return wParagraph{}, fmt.Errorf("unknown block kind %q", block.Kind)
	}
	if block.Style.IndentTwips > 0 {
		ppr.Ind = &wInd{Left: strconv.Itoa(block.Style.IndentTwips)}
	}
	if block.Style.Align == AlignCenter {
		ppr.Jc = &wVal{Val: "center"}
	} else {
		ppr.Jc = &wVal{Val: "left"}
	}

	p := wParagraph{PPr: ppr}
	if block.Kind == KindSpacer || block.Text == "" {
		return p, nil
	}
	p.Runs = []wRun{{
		RPr:  runProperties(block.Style),
		Text: wText{Space: "preserve", Value: block.Text},
	}}
	return p, nil
}

func runProperties(style Style) *wRPr {
	rpr := &wRPr{}
	if style.Font != "" {
		rpr.Fonts = &wFonts{ASCII: style.Font, HAnsi: style.Font, CS: style.Font}
	}
	if style.Bold {
		rpr.Bold = &struct{}{}
	}
	if style.Italic {
		rpr.Italic = &struct{}{}
	}
	if style.SizePt > 0 {
		halfPoints := strconv.Itoa(style.SizePt * 2)
		rpr.Size = &wVal{Val: halfPoints}
		rpr.SizeCs = &wVal{Val: halfPoints}
	}
	return rpr
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: zipModTime,
	}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

// validateDocumentXMLStructure re-reads the generated XML and rejects nested
// paragraphs and run properties that follow run text.
func validateDocumentXMLStructure(xmlText []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(xmlText))
	var stack []xml.Name
	type runState struct {
		seenText bool
	}
	var runs []runState

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w\n%s", err, firstLines(string(xmlText), 5))
		}
		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name)
			if isWmlElement(t.Name, "p") {
				for i := len(stack) - 2; i >= 0; i-- {
					if isWmlElement(stack[i], "p") {
						return fmt.Errorf("document.xml has nested <w:p>")
					}
				}
			}
			if isWmlElement(t.Name, "r") {
				runs = append(runs, runState{})
			}
			if isWmlElement(t.Name, "t") && len(runs) > 0 {
				runs[len(runs)-1].seenText = true
			}
			if isWmlElement(t.Name, "rPr") && len(runs) > 0 && runs[len(runs)-1].seenText {
				return fmt.Errorf("document.xml has <w:rPr> after <w:t> in a run")
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "r") && len(runs) > 0 {
				runs = runs[:len(runs)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}

func firstLines(text string, count int) string {
	if count <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n")
}
