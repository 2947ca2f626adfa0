package mdserve

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// docxConverter abstracts HTML to DOCX conversion.
type docxConverter interface {
	ToDocx(ctx context.Context, htmlContent, title string, opts *DocxOptions) ([]byte, error)
}

// docxBuilder assembles a WordprocessingML package entirely in memory: the
// rendered HTML fragment is mapped onto a supported subset of Word markup
// and zipped together with the fixed package parts. Inline data-URI images
// (rendered diagrams) become media parts referenced by relationship IDs.
type docxBuilder struct{}

var _ docxConverter = (*docxBuilder)(nil)

func newDocxBuilder() *docxBuilder {
	return &docxBuilder{}
}

// mediaImage is one embedded image extracted from the HTML.
type mediaImage struct {
	relID string
	name  string
	data  []byte
}

// dataURIImagePattern matches an <img> whose src is an inline PNG data URI.
var dataURIImagePattern = regexp.MustCompile(`<img[^>]*src="data:image/png;base64,([A-Za-z0-9+/=]+)"[^>]*/?>`)

// ToDocx converts an HTML fragment into DOCX bytes.
func (b *docxBuilder) ToDocx(ctx context.Context, htmlContent, title string, opts *DocxOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, images, err := b.extractImages(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}

	documentXML := b.buildDocumentXML(content, images, opts)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml":          b.contentTypesXML(opts),
		"_rels/.rels":                  packageRelsXML,
		"word/_rels/document.xml.rels": b.documentRelsXML(images, opts),
		"word/styles.xml":              stylesXML,
		"word/numbering.xml":           numberingXML,
		"word/document.xml":            documentXML,
	}
	if opts != nil && opts.Header {
		parts["word/header1.xml"] = b.headerXML(title)
	}
	if opts != nil && opts.Footer {
		parts["word/footer1.xml"] = b.footerXML(opts.PageNumbers)
	}

	for name, content := range parts {
		entry, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
		}
	}

	for _, img := range images {
		entry, err := zw.Create("word/media/" + img.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
		}
		if _, err := entry.Write(img.data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}
	return buf.Bytes(), nil
}

// extractImages pulls inline PNG data URIs out of the HTML, returning the
// content with each <img> replaced by an image token and the decoded media
// entries. Relationship IDs start after the fixed styles/numbering ones.
func (b *docxBuilder) extractImages(content string) (string, []mediaImage, error) {
	var images []mediaImage
	var decodeErr error

	result := dataURIImagePattern.ReplaceAllStringFunc(content, func(tag string) string {
		if decodeErr != nil {
			return tag
		}
		m := dataURIImagePattern.FindStringSubmatch(tag)
		data, err := base64.StdEncoding.DecodeString(m[1])
		if err != nil {
			decodeErr = fmt.Errorf("decoding embedded image: %w", err)
			return tag
		}
		idx := len(images) + 1
		img := mediaImage{
			relID: fmt.Sprintf("rId%d", idx+imageRelIDOffset),
			name:  fmt.Sprintf("image%d.png", idx),
			data:  data,
		}
		images = append(images, img)
		return imageToken(img.relID)
	})

	if decodeErr != nil {
		return "", nil, decodeErr
	}
	return result, images, nil
}

// Relationship IDs rId1..rId4 are reserved for styles, numbering, header,
// and footer; media relationships start after them.
const imageRelIDOffset = 4

func imageToken(relID string) string {
	return "\x00img:" + relID + "\x00"
}

var imageTokenPattern = regexp.MustCompile("\x00img:(rId[0-9]+)\x00")

// buildDocumentXML maps the supported HTML subset onto WordprocessingML.
// The transformation is deliberately textual, mirroring how the HTML was
// produced: goldmark emits a predictable, well-formed tag stream.
func (b *docxBuilder) buildDocumentXML(content string, images []mediaImage, opts *DocxOptions) string {
	content = stripAttributes(content)
	content = strings.ReplaceAll(content, "> <", "><")

	content = convertTables(content)
	content = convertLists(content)
	content = convertCodeBlocks(content)
	content = convertBlockquotes(content)
	content = convertHeadings(content)
	content = convertInline(content)
	content = convertImages(content)
	content = stripUnknownTags(content)

	var body strings.Builder
	body.WriteString(documentXMLHead)
	body.WriteString(content)
	body.WriteString(b.sectPrXML(opts))
	body.WriteString(documentXMLTail)
	return body.String()
}

// attributePattern removes attributes goldmark and chroma add for browsers
// (ids, classes, inline styles) which have no Word equivalent.
var attributePattern = regexp.MustCompile(` (?:id|class|style|align|tabindex)="[^"]*"`)

func stripAttributes(content string) string {
	return attributePattern.ReplaceAllString(content, "")
}

var (
	spanTagPattern    = regexp.MustCompile(`</?span[^>]*>`)
	anchorOpenPattern = regexp.MustCompile(`<a [^>]*>`)
	tablePattern      = regexp.MustCompile(`(?s)<table>(.*?)</table>`)
	rowPattern        = regexp.MustCompile(`(?s)<tr>(.*?)</tr>`)
	cellPattern       = regexp.MustCompile(`(?s)<t([hd])>(.*?)</t[hd]>`)
	listItemPattern   = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	// Matches both plain fences (<pre><code>) and chroma's highlighted
	// output, where the <code> wrapper may be absent.
	codeBlockPattern = regexp.MustCompile(`(?s)<pre>(?:<code[^>]*>)?(.*?)(?:</code>)?</pre>`)
	blockquotePattern = regexp.MustCompile(`(?s)<blockquote>(.*?)</blockquote>`)
	headingPattern    = regexp.MustCompile(`(?s)<h([1-6])>(.*?)</h[1-6]>`)
	leftoverTag       = regexp.MustCompile(`<[^>]*>`)
)

// convertTables rewrites <table> blocks into w:tbl markup. The first row and
// any <th> cells are shaded and bolded.
func convertTables(content string) string {
	return tablePattern.ReplaceAllStringFunc(content, func(tableHTML string) string {
		inner := tablePattern.FindStringSubmatch(tableHTML)[1]
		rows := rowPattern.FindAllStringSubmatch(inner, -1)
		if len(rows) == 0 {
			return ""
		}

		var tbl strings.Builder
		tbl.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="5000" w:type="pct"/></w:tblPr>`)

		for rowIdx, row := range rows {
			tbl.WriteString("<w:tr>")
			cells := cellPattern.FindAllStringSubmatch(row[1], -1)
			for _, cell := range cells {
				isHeader := rowIdx == 0 || cell[1] == "h"
				text := flattenInline(cell[2])

				tbl.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/>`)
				if isHeader {
					tbl.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="E7E6E6"/>`)
				}
				tbl.WriteString(`</w:tcPr><w:p><w:r><w:rPr>`)
				if isHeader {
					tbl.WriteString(`<w:b/>`)
				}
				tbl.WriteString(`</w:rPr><w:t xml:space="preserve">`)
				tbl.WriteString(text)
				tbl.WriteString(`</w:t></w:r></w:p></w:tc>`)
			}
			tbl.WriteString("</w:tr>")
		}

		tbl.WriteString("</w:tbl>")
		return tbl.String()
	})
}

// convertLists flattens <ul>/<ol> items into ListParagraph entries.
// Bulleted lists use numbering 1, ordered lists numbering 2.
func convertLists(content string) string {
	convert := func(content, openTag, closeTag string, numID int) string {
		for {
			start := strings.Index(content, openTag)
			if start == -1 {
				return content
			}
			end := strings.Index(content[start:], closeTag)
			if end == -1 {
				return content
			}
			end += start + len(closeTag)

			segment := content[start:end]
			var items strings.Builder
			for _, item := range listItemPattern.FindAllStringSubmatch(segment, -1) {
				items.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="`)
				items.WriteString(fmt.Sprintf("%d", numID))
				items.WriteString(`"/></w:numPr></w:pPr><w:r><w:t xml:space="preserve">`)
				items.WriteString(flattenInline(item[1]))
				items.WriteString(`</w:t></w:r></w:p>`)
			}
			content = content[:start] + items.String() + content[end:]
		}
	}

	content = convert(content, "<ul>", "</ul>", 1)
	content = convert(content, "<ol>", "</ol>", 2)
	return content
}

// convertCodeBlocks maps fenced code to Code-styled paragraphs, one run per
// source line.
func convertCodeBlocks(content string) string {
	return codeBlockPattern.ReplaceAllStringFunc(content, func(block string) string {
		inner := codeBlockPattern.FindStringSubmatch(block)[1]
		inner = strings.TrimRight(flattenInline(inner), "\n")

		var p strings.Builder
		p.WriteString(`<w:p><w:pPr><w:pStyle w:val="Code"/></w:pPr>`)
		for i, line := range strings.Split(inner, "\n") {
			if i > 0 {
				p.WriteString(`<w:r><w:br/></w:r>`)
			}
			p.WriteString(`<w:r><w:t xml:space="preserve">`)
			p.WriteString(line)
			p.WriteString(`</w:t></w:r>`)
		}
		p.WriteString(`</w:p>`)
		return p.String()
	})
}

func convertBlockquotes(content string) string {
	return blockquotePattern.ReplaceAllStringFunc(content, func(block string) string {
		inner := blockquotePattern.FindStringSubmatch(block)[1]
		return `<w:p><w:pPr><w:pStyle w:val="Quote"/></w:pPr><w:r><w:t xml:space="preserve">` +
			flattenInline(inner) + `</w:t></w:r></w:p>`
	})
}

// convertHeadings maps h1-h3 to their Word styles; deeper levels share
// Heading3.
func convertHeadings(content string) string {
	return headingPattern.ReplaceAllStringFunc(content, func(heading string) string {
		m := headingPattern.FindStringSubmatch(heading)
		level := m[1]
		if level > "3" {
			level = "3"
		}
		return `<w:p><w:pPr><w:pStyle w:val="Heading` + level + `"/></w:pPr><w:r><w:t xml:space="preserve">` +
			flattenInline(m[2]) + `</w:t></w:r></w:p>`
	})
}

// convertInline handles paragraphs, emphasis, and breaks.
func convertInline(content string) string {
	replacements := [][2]string{
		{"<p>", `<w:p><w:r><w:t xml:space="preserve">`},
		{"</p>", `</w:t></w:r></w:p>`},
		{"<strong>", `</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`},
		{"</strong>", `</w:t></w:r><w:r><w:t xml:space="preserve">`},
		{"<em>", `</w:t></w:r><w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">`},
		{"</em>", `</w:t></w:r><w:r><w:t xml:space="preserve">`},
		{"<del>", `</w:t></w:r><w:r><w:rPr><w:strike/></w:rPr><w:t xml:space="preserve">`},
		{"</del>", `</w:t></w:r><w:r><w:t xml:space="preserve">`},
		{"<br />", `</w:t></w:r><w:r><w:br/></w:r><w:r><w:t xml:space="preserve">`},
		{"<br/>", `</w:t></w:r><w:r><w:br/></w:r><w:r><w:t xml:space="preserve">`},
		{"<br>", `</w:t></w:r><w:r><w:br/></w:r><w:r><w:t xml:space="preserve">`},
		{"<hr/>", ""},
		{"<hr>", ""},
		{"<code>", ""},
		{"</code>", ""},
	}
	for _, r := range replacements {
		content = strings.ReplaceAll(content, r[0], r[1])
	}
	return content
}

// convertImages expands image tokens into w:drawing markup referencing the
// media relationship. Fixed display size: 5in x 3.75in (EMU). A token sits
// inside an already-converted paragraph run, so the replacement closes that
// run, emits the drawing paragraph, and reopens a run; the empty runs on
// either side are valid and render as nothing.
func convertImages(content string) string {
	n := 0
	return imageTokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		n++
		relID := imageTokenPattern.FindStringSubmatch(token)[1]
		return fmt.Sprintf(`</w:t></w:r></w:p><w:p><w:r><w:drawing><wp:inline><wp:extent cx="4572000" cy="3429000"/><wp:docPr id="%d" name="Diagram %d"/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="Diagram %d"/><pic:cNvPicPr/></pic:nvPicPr><pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill><pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="4572000" cy="3429000"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p><w:p><w:r><w:t xml:space="preserve">`,
			n, n, n, n, relID)
	})
}

// flattenInline reduces nested inline markup to plain run text.
// HTML entities double as XML entities, so escaped text passes through.
func flattenInline(s string) string {
	s = spanTagPattern.ReplaceAllString(s, "")
	s = anchorOpenPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "</a>", "")
	s = leftoverTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripUnknownTags drops any HTML tag without a Word mapping, keeping its
// text content. Word markup inserted earlier uses namespaced tags which the
// pattern leaves alone.
func stripUnknownTags(content string) string {
	return leftoverTag.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:") || strings.HasPrefix(tag, "</w:") ||
			strings.HasPrefix(tag, "<wp:") || strings.HasPrefix(tag, "</wp:") ||
			strings.HasPrefix(tag, "<a:") || strings.HasPrefix(tag, "</a:") ||
			strings.HasPrefix(tag, "<pic:") || strings.HasPrefix(tag, "</pic:") {
			return tag
		}
		return ""
	})
}

// sectPrXML emits section properties, wiring header/footer references when
// those parts are present.
func (b *docxBuilder) sectPrXML(opts *DocxOptions) string {
	var refs strings.Builder
	refs.WriteString("<w:sectPr>")
	if opts != nil && opts.Header {
		refs.WriteString(`<w:headerReference w:type="default" r:id="rId3"/>`)
	}
	if opts != nil && opts.Footer {
		refs.WriteString(`<w:footerReference w:type="default" r:id="rId4"/>`)
	}
	refs.WriteString(`<w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720"/></w:sectPr>`)
	return refs.String()
}

// contentTypesXML lists the package parts, including optional header/footer
// overrides.
func (b *docxBuilder) contentTypesXML(opts *DocxOptions) string {
	var overrides strings.Builder
	if opts != nil && opts.Header {
		overrides.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	}
	if opts != nil && opts.Footer {
		overrides.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
` + overrides.String() + `</Types>`
}

// documentRelsXML builds word/_rels/document.xml.rels: fixed parts first,
// then one image relationship per media entry.
func (b *docxBuilder) documentRelsXML(images []mediaImage, opts *DocxOptions) string {
	var rels strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
`)
	if opts != nil && opts.Header {
		rels.WriteString(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>` + "\n")
	}
	if opts != nil && opts.Footer {
		rels.WriteString(`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>` + "\n")
	}
	for _, img := range images {
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`+"\n", img.relID, img.name)
	}
	rels.WriteString("</Relationships>")
	return rels.String()
}

// headerXML renders the document title centered in the page header.
func (b *docxBuilder) headerXML(title string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">` + html.EscapeString(title) + `</w:t></w:r></w:p>
</w:hdr>`
}

// footerXML renders the page footer, optionally with a PAGE field.
func (b *docxBuilder) footerXML(pageNumbers bool) string {
	field := ""
	if pageNumbers {
		field = `<w:r><w:fldChar w:fldCharType="begin"/></w:r><w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r><w:r><w:fldChar w:fldCharType="end"/></w:r>`
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` + field + `</w:p>
</w:ftr>`
}

const documentXMLHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
`

const documentXMLTail = `</w:body>
</w:document>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/><w:pPr><w:spacing w:after="120" w:line="240" w:lineRule="auto"/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="480" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="360" w:after="120"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="280" w:after="120"/><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:ind w:left="720"/><w:contextualSpacing/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:ind w:left="720" w:right="720"/></w:pPr><w:rPr><w:i/><w:color w:val="666666"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F5F5F5"/></w:pPr><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas"/><w:sz w:val="20"/></w:rPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders></w:tblPr></w:style>
</w:styles>`

const numberingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="1"><w:multiLevelType w:val="singleLevel"/><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>
</w:numbering>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
