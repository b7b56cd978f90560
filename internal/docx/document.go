package docx

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/psicosocial/schema"
)

const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"

	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relIDPrefix   = "rIdImg"
	firstImageRel = 100
)

var headerPartName = regexp.MustCompile(`^word/header\d+\.xml$`)

// Document is a Word package with its main parts parsed.
type Document struct {
	pkg     *Package
	body    *Node
	headers []*parsedPart
	rels    *Node
	types   *Node

	nextRel   int
	nextDocPr int
}

type parsedPart struct {
	name string
	tree *Node
}

// Load parses a Word package. A corrupt archive or a missing document,
// relationships or content types part is an error.
func Load(data []byte) (*Document, error) {
	pkg, err := OpenPackage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrInvalidTemplate, err)
	}
	return newDocument(pkg)
}

func newDocument(pkg *Package) (*Document, error) {
	d := &Document{pkg: pkg, nextRel: firstImageRel, nextDocPr: 1}

	required := []struct {
		name string
		dst  **Node
	}{
		{partDocument, &d.body},
		{partDocumentRels, &d.rels},
		{partContentTypes, &d.types},
	}
	for _, r := range required {
		tree, err := parsePart(pkg, r.name)
		if err != nil {
			return nil, err
		}
		*r.dst = tree
	}

	for _, name := range pkg.Names() {
		if !headerPartName.MatchString(name) {
			continue
		}
		tree, err := parsePart(pkg, name)
		if err != nil {
			return nil, err
		}
		d.headers = append(d.headers, &parsedPart{name: name, tree: tree})
	}

	for _, p := range d.body.FindAll("wp:docPr") {
		if v, ok := p.Attr("id"); ok {
			if id, err := strconv.Atoi(v); err == nil && id >= d.nextDocPr {
				d.nextDocPr = id + 1
			}
		}
	}
	return d, nil
}

func parsePart(pkg *Package, name string) (*Node, error) {
	data, ok := pkg.Part(name)
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", schema.ErrInvalidTemplate, name)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: part %s: %w", schema.ErrInvalidTemplate, name, err)
	}
	return tree, nil
}

// Save serializes every parsed part and returns the package bytes.
func (d *Document) Save() ([]byte, error) {
	d.pkg.SetPart(partDocument, d.body.Bytes())
	d.pkg.SetPart(partDocumentRels, d.rels.Bytes())
	d.pkg.SetPart(partContentTypes, d.types.Bytes())
	for _, h := range d.headers {
		d.pkg.SetPart(h.name, h.tree.Bytes())
	}
	return d.pkg.Bytes()
}

// Body returns the w:body element of the main document.
func (d *Document) Body() *Node {
	return d.body.First("w:body")
}

// Package returns the underlying archive.
func (d *Document) Package() *Package {
	return d.pkg
}

// textNodes returns the w:t elements of a paragraph, leaving out nested paragraphs.
func textNodes(p *Node) []*Node {
	var out []*Node
	for _, c := range p.Children {
		c.Walk(func(n *Node) bool {
			if n.Is("w:p") {
				return false
			}
			if n.Is("w:t") {
				out = append(out, n)
				return false
			}
			return true
		})
	}
	return out
}

func runText(t *Node) string {
	var b strings.Builder
	for _, c := range t.Children {
		if c.Kind == TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func setRunText(t *Node, s string) {
	t.Children = nil
	if s != "" {
		t.With(Chars(s))
	}
	if strings.TrimSpace(s) != s {
		t.SetAttr("xml:space", "preserve")
	}
}

// ParagraphText rebuilds the visible text of a paragraph from all of its runs.
func ParagraphText(p *Node) string {
	var b strings.Builder
	for _, t := range textNodes(p) {
		b.WriteString(runText(t))
	}
	return b.String()
}

func isHidden(p *Node) bool {
	return p.First("w:webHidden") != nil
}

// parts returns the body tree, followed by the header trees when asked.
func (d *Document) parts(withHeaders bool) []*Node {
	out := []*Node{d.body}
	if withHeaders {
		for _, h := range d.headers {
			out = append(out, h.tree)
		}
	}
	return out
}

// FindParagraph returns the first body paragraph whose rebuilt text contains
// target. Paragraphs carrying hidden table-of-contents runs are skipped.
func (d *Document) FindParagraph(target string) *Node {
	for _, p := range d.body.FindAll("w:p") {
		if isHidden(p) {
			continue
		}
		if strings.Contains(ParagraphText(p), target) {
			return p
		}
	}
	return nil
}

// ReplaceText replaces every occurrence of old in the body, and in headers
// when withHeaders is set. Matches may span several runs; the replacement
// takes the formatting of the run where the match starts.
func (d *Document) ReplaceText(old, replacement string, withHeaders bool) int {
	if old == "" {
		return 0
	}
	n := 0
	for _, part := range d.parts(withHeaders) {
		for _, p := range part.FindAll("w:p") {
			n += replaceInParagraph(p, old, replacement)
		}
	}
	return n
}

func replaceInParagraph(p *Node, old, replacement string) int {
	runs := textNodes(p)
	count, from := 0, 0
	for {
		texts := make([]string, len(runs))
		starts := make([]int, len(runs))
		var full strings.Builder
		for i, r := range runs {
			starts[i] = full.Len()
			texts[i] = runText(r)
			full.WriteString(texts[i])
		}
		idx := strings.Index(full.String()[from:], old)
		if idx < 0 {
			return count
		}
		idx += from
		end := idx + len(old)

		first := 0
		for first < len(runs) && idx >= starts[first]+len(texts[first]) {
			first++
		}
		last := first
		for last < len(runs) && end > starts[last]+len(texts[last]) {
			last++
		}

		head := texts[first][:idx-starts[first]]
		if first == last {
			setRunText(runs[first], head+replacement+texts[first][end-starts[first]:])
		} else {
			setRunText(runs[first], head+replacement)
			for k := first + 1; k < last; k++ {
				setRunText(runs[k], "")
			}
			setRunText(runs[last], texts[last][end-starts[last]:])
		}
		from = idx + len(replacement)
		count++
	}
}

// ReplaceRun sets the text of the first body run whose whole text satisfies match.
func (d *Document) ReplaceRun(match func(string) bool, value string) bool {
	for _, t := range d.body.FindAll("w:t") {
		if match(runText(t)) {
			setRunText(t, value)
			return true
		}
	}
	return false
}

// SetParagraphText rewrites the first paragraph containing target with value,
// keeping the formatting of its first run.
func (d *Document) SetParagraphText(target, value string) bool {
	p := d.FindParagraph(target)
	if p == nil {
		return false
	}
	runs := textNodes(p)
	for i, t := range runs {
		if i == 0 {
			setRunText(t, value)
		} else {
			setRunText(t, "")
		}
	}
	return true
}

// InsertAfterParagraph places nodes right after the paragraph containing caption.
func (d *Document) InsertAfterParagraph(caption string, nodes ...*Node) bool {
	p := d.FindParagraph(caption)
	if p == nil {
		return false
	}
	// A table cell must end with a paragraph.
	if p.Parent.Is("w:tc") && p.index() == len(p.Parent.Children)-1 {
		nodes = append(nodes, El("w:p"))
	}
	p.InsertAfter(nodes...)
	return true
}

// ReplaceTable swaps the innermost table holding a paragraph that contains
// marker for tbl. Paragraphs outside tables are ignored.
func (d *Document) ReplaceTable(marker string, tbl *Node) bool {
	for _, p := range d.body.FindAll("w:p") {
		if isHidden(p) {
			continue
		}
		old := p.Ancestor("w:tbl")
		if old == nil || !strings.Contains(ParagraphText(p), marker) {
			continue
		}
		old.ReplaceWith(tbl)
		return true
	}
	return false
}

// InjectImage replaces the paragraph holding marker with an inline PNG of
// cx by cy EMU. When that paragraph sits in a table cell the whole cell
// content is replaced and the cell properties are kept. The image part,
// its relationship and the png content type are registered on success.
func (d *Document) InjectImage(marker string, png []byte, cx, cy int64) bool {
	p := d.FindParagraph(marker)
	if p == nil {
		return false
	}

	relID := d.addImagePart(png)
	docPr := d.nextDocPr
	d.nextDocPr += 2
	img := El("w:p").With(
		El("w:pPr").With(El("w:jc", "w:val", "center"), El("w:rPr")),
		inlineImage(relID, cx, cy, docPr, marker),
	)

	if tc := p.Ancestor("w:tc"); tc != nil {
		props := tc.Child("w:tcPr")
		tc.Children = nil
		tc.With(props, img)
		return true
	}
	p.ReplaceWith(img)
	return true
}

func (d *Document) addImagePart(png []byte) string {
	root := d.rels.root()
	taken := map[string]bool{}
	for _, r := range root.FindAll("Relationship") {
		if id, ok := r.Attr("Id"); ok {
			taken[id] = true
		}
	}
	var id string
	for {
		id = relIDPrefix + strconv.Itoa(d.nextRel)
		d.nextRel++
		if !taken[id] {
			break
		}
	}

	target := path.Join("media", "chart_"+id+".png")
	d.pkg.SetPart("word/"+target, png)
	root.With(El("Relationship", "Id", id, "Type", relTypeImage, "Target", target))
	d.ensureDefaultContentType("png", "image/png")
	return id
}

func (d *Document) ensureDefaultContentType(ext, contentType string) {
	root := d.types.root()
	for _, def := range root.FindAll("Default") {
		if v, _ := def.Attr("Extension"); strings.EqualFold(v, ext) {
			return
		}
	}
	root.With(El("Default", "Extension", ext, "ContentType", contentType))
}
