package mdserve

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
)

// readDocxParts unzips DOCX bytes into a part-name to content map.
func readDocxParts(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func TestDocxBuilder_MinimalDocument(t *testing.T) {
	t.Parallel()

	b := newDocxBuilder()
	data, err := b.ToDocx(context.Background(), "<h1 id=\"title\">Title</h1>\n<p>Hello <strong>world</strong></p>\n", "doc", nil)
	if err != nil {
		t.Fatalf("ToDocx() error = %v", err)
	}

	parts := readDocxParts(t, data)

	for _, required := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
	} {
		if _, ok := parts[required]; !ok {
			t.Errorf("missing package part %s", required)
		}
	}

	doc := parts["word/document.xml"]
	if !strings.Contains(doc, `<w:pStyle w:val="Heading1"/>`) {
		t.Error("h1 not mapped to Heading1 style")
	}
	if !strings.Contains(doc, ">Title</w:t>") {
		t.Error("heading text missing")
	}
	if !strings.Contains(doc, "<w:b/>") {
		t.Error("strong not mapped to bold run")
	}
	if strings.Contains(doc, "<p>") || strings.Contains(doc, "<strong>") {
		t.Error("HTML tags leaked into document.xml")
	}

	// No header/footer requested: no such parts, no references.
	if _, ok := parts["word/header1.xml"]; ok {
		t.Error("unexpected header part")
	}
	if strings.Contains(doc, "headerReference") {
		t.Error("unexpected header reference in sectPr")
	}
}

func TestDocxBuilder_EmbedsImages(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G', 9, 8, 7}
	encoded := base64.StdEncoding.EncodeToString(png)
	fragment := `<p><img src="data:image/png;base64,` + encoded + `" alt="Diagram 1" /></p>`

	b := newDocxBuilder()
	data, err := b.ToDocx(context.Background(), fragment, "doc", nil)
	if err != nil {
		t.Fatalf("ToDocx() error = %v", err)
	}

	parts := readDocxParts(t, data)

	media, ok := parts["word/media/image1.png"]
	if !ok {
		t.Fatal("missing media part for embedded image")
	}
	if !bytes.Equal([]byte(media), png) {
		t.Error("media part bytes do not match the decoded data URI")
	}

	rels := parts["word/_rels/document.xml.rels"]
	if !strings.Contains(rels, `Id="rId5"`) || !strings.Contains(rels, `Target="media/image1.png"`) {
		t.Error("image relationship missing")
	}

	doc := parts["word/document.xml"]
	if !strings.Contains(doc, `r:embed="rId5"`) {
		t.Error("document.xml does not reference the image relationship")
	}
	if strings.Contains(doc, "base64") {
		t.Error("data URI leaked into document.xml")
	}

	types := parts["[Content_Types].xml"]
	if !strings.Contains(types, `Extension="png"`) {
		t.Error("png default content type missing")
	}
}

func TestDocxBuilder_HeaderFooterParts(t *testing.T) {
	t.Parallel()

	b := newDocxBuilder()
	data, err := b.ToDocx(context.Background(), "<p>body</p>", "Quarterly Report", &DocxOptions{
		Header:      true,
		Footer:      true,
		PageNumbers: true,
	})
	if err != nil {
		t.Fatalf("ToDocx() error = %v", err)
	}

	parts := readDocxParts(t, data)

	header, ok := parts["word/header1.xml"]
	if !ok {
		t.Fatal("missing header part")
	}
	if !strings.Contains(header, "Quarterly Report") {
		t.Error("header does not carry the document title")
	}

	footer, ok := parts["word/footer1.xml"]
	if !ok {
		t.Fatal("missing footer part")
	}
	if !strings.Contains(footer, "PAGE") {
		t.Error("footer missing page number field")
	}

	doc := parts["word/document.xml"]
	if !strings.Contains(doc, `<w:headerReference w:type="default" r:id="rId3"/>`) {
		t.Error("sectPr missing header reference")
	}
	if !strings.Contains(doc, `<w:footerReference w:type="default" r:id="rId4"/>`) {
		t.Error("sectPr missing footer reference")
	}

	types := parts["[Content_Types].xml"]
	if !strings.Contains(types, "header+xml") || !strings.Contains(types, "footer+xml") {
		t.Error("content types missing header/footer overrides")
	}
}

func TestDocxBuilder_FooterWithoutPageNumbers(t *testing.T) {
	t.Parallel()

	b := newDocxBuilder()
	data, err := b.ToDocx(context.Background(), "<p>body</p>", "doc", &DocxOptions{Footer: true})
	if err != nil {
		t.Fatalf("ToDocx() error = %v", err)
	}

	parts := readDocxParts(t, data)
	if strings.Contains(parts["word/footer1.xml"], "PAGE") {
		t.Error("footer has a page field without PageNumbers set")
	}
}

func TestDocxBuilder_BlockMappings(t *testing.T) {
	t.Parallel()

	fragment := `<ul>
<li>alpha</li>
<li>beta</li>
</ul>
<ol>
<li>first</li>
</ol>
<blockquote>
<p>quoted</p>
</blockquote>
<pre><code class="language-go">func main() {}
fmt.Println()</code></pre>
<table>
<thead>
<tr><th>Name</th><th>Value</th></tr>
</thead>
<tbody>
<tr><td>a</td><td>1</td></tr>
</tbody>
</table>`

	b := newDocxBuilder()
	data, err := b.ToDocx(context.Background(), fragment, "doc", nil)
	if err != nil {
		t.Fatalf("ToDocx() error = %v", err)
	}

	doc := readDocxParts(t, data)["word/document.xml"]

	if strings.Count(doc, `<w:numId w:val="1"/>`) != 2 {
		t.Error("bulleted items not mapped to numbering 1")
	}
	if strings.Count(doc, `<w:numId w:val="2"/>`) != 1 {
		t.Error("ordered item not mapped to numbering 2")
	}
	if !strings.Contains(doc, `<w:pStyle w:val="Quote"/>`) {
		t.Error("blockquote not mapped to Quote style")
	}
	if !strings.Contains(doc, `<w:pStyle w:val="Code"/>`) {
		t.Error("code block not mapped to Code style")
	}
	if !strings.Contains(doc, "<w:br/>") {
		t.Error("multi-line code block lost its line break")
	}
	if !strings.Contains(doc, "<w:tbl>") {
		t.Error("table not mapped to w:tbl")
	}
	if !strings.Contains(doc, `<w:shd w:val="clear" w:color="auto" w:fill="E7E6E6"/>`) {
		t.Error("header row not shaded")
	}
	if strings.Contains(doc, "<li>") || strings.Contains(doc, "<table>") {
		t.Error("HTML tags leaked into document.xml")
	}
}

func TestDocxBuilder_InvalidImageData(t *testing.T) {
	t.Parallel()

	b := newDocxBuilder()
	// Matches the data-URI shape but is not decodable base64.
	_, err := b.ToDocx(context.Background(), `<img src="data:image/png;base64,A" />`, "doc", nil)
	if !errors.Is(err, ErrDocxGeneration) {
		t.Errorf("ToDocx() error = %v, want ErrDocxGeneration", err)
	}
}

func TestDocxBuilder_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newDocxBuilder()
	if _, err := b.ToDocx(ctx, "<p>x</p>", "doc", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("ToDocx() error = %v, want context.Canceled", err)
	}
}
