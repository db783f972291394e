package document

import (
	"bytes"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/treedown/treedown/internal/ulid"
)

// Parser builds a Tree from raw markdown. It is permissive: no input is
// ever rejected, lines that match no specific rule fall back to paragraph
// content, and unterminated constructs stay open through end of input.
type Parser struct {
	newID  func() string
	logger *zap.Logger
}

type ParserOption func(*Parser)

// WithIDGenerator replaces the node id generator, e.g. for stable test ids.
func WithIDGenerator(fn func() string) ParserOption {
	return func(p *Parser) { p.newID = fn }
}

func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		newID:  ulid.GenerateID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the document tree for source. It never fails.
func Parse(source []byte) *Tree {
	return NewParser().Parse(source)
}

// blockContainerTags are the block-level HTML tags whose children are
// parsed as nested blocks.
var blockContainerTags = map[string]bool{
	"div": true, "details": true, "summary": true,
	"section": true, "figure": true, "aside": true,
}

// voidTags never take a closing tag; a single-line occurrence is a leaf.
var voidTags = map[string]bool{
	"img": true, "br": true, "hr": true, "input": true, "source": true, "embed": true,
}

type line struct {
	text   string
	hasEOL bool
	num    int
}

func eolCount(ln line) int {
	if ln.hasEOL {
		return 1
	}
	return 0
}

func (p *Parser) Parse(source []byte) *Tree {
	lineBreak := detectLineBreak(source)
	text := string(source)
	if lineBreak == "\r\n" {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	lines := splitLines(text)
	tree := &Tree{lineBreak: lineBreak}

	rest := lines
	if raw, consumed, eol, ok := splitFrontmatterLines(lines); ok {
		tree.frontmatterRaw = raw
		tree.leadingBreaks = eol
		rest = lines[consumed:]
	}

	nodes, leading := p.parseBlocks(rest)
	tree.leadingBreaks += leading
	tree.children = nodes

	p.logger.Debug("parsed document",
		zap.Int("lines", len(lines)),
		zap.Int("nodes", len(nodes)),
		zap.Bool("frontmatter", tree.frontmatterRaw != ""))

	return tree
}

// detectLineBreak reports the dominant line terminator of source. A
// document where every line feed is preceded by a carriage return is CRLF.
func detectLineBreak(source []byte) string {
	crlfCount := bytes.Count(source, []byte{'\r', '\n'})
	lfCount := bytes.Count(source, []byte{'\n'})
	if lfCount > 0 && crlfCount == lfCount {
		return "\r\n"
	}
	return "\n"
}

func splitLines(text string) []line {
	if text == "" {
		return nil
	}
	segs := strings.Split(text, "\n")
	finalEOL := false
	if segs[len(segs)-1] == "" {
		finalEOL = true
		segs = segs[:len(segs)-1]
	}
	lines := make([]line, len(segs))
	for i, s := range segs {
		lines[i] = line{
			text:   s,
			hasEOL: i < len(segs)-1 || finalEOL,
			num:    i + 1,
		}
	}
	return lines
}

// splitFrontmatterLines detaches a leading "---"/"+++" fenced metadata
// section. An unclosed fence is not frontmatter; the opening line falls
// through to normal block parsing.
func splitFrontmatterLines(lines []line) (raw string, consumed, eol int, ok bool) {
	if len(lines) == 0 {
		return "", 0, 0, false
	}
	delim := lines[0].text
	if delim != "---" && delim != "+++" {
		return "", 0, 0, false
	}
	for j := 1; j < len(lines); j++ {
		if lines[j].text == delim {
			texts := make([]string, 0, j+1)
			for _, ln := range lines[:j+1] {
				texts = append(texts, ln.text)
			}
			return strings.Join(texts, "\n"), j + 1, eolCount(lines[j]), true
		}
	}
	return "", 0, 0, false
}

type lineClass int

const (
	classText lineClass = iota
	classBlank
	classHeading
	classRule
	classFence
	classQuote
	classList
	classTable
	classImage
	classHTML
)

// classify inspects the leading classified-character sequence of one line,
// with a single line of lookahead for table separators.
func classify(lines []line, i int) lineClass {
	text := lines[i].text
	if text == "" {
		return classBlank
	}
	toks := ClassifyChars(text)
	switch {
	case isRuleLine(toks):
		return classRule
	case headingLevel(toks) > 0:
		return classHeading
	case fenceWidth(toks) >= 3:
		return classFence
	case toks[0].Kind == CharGreater:
		return classQuote
	case isListLine(text, toks):
		return classList
	case hasPipe(toks) && i+1 < len(lines) && isTableSeparator(lines[i+1].text):
		return classTable
	case isImageLine(text):
		return classImage
	case isBlockTagLine(text):
		return classHTML
	}
	return classText
}

func headingLevel(toks []CharToken) int {
	level := 0
	for _, tk := range toks {
		if tk.Kind == CharHash {
			level++
			continue
		}
		if tk.Kind == CharSpace && level >= 1 && level <= 6 {
			return level
		}
		break
	}
	return 0
}

func fenceWidth(toks []CharToken) int {
	n := 0
	for _, tk := range toks {
		if tk.Kind != CharBacktick {
			break
		}
		n++
	}
	return n
}

func isRuleLine(toks []CharToken) bool {
	count := 0
	var kind CharKind
	for _, tk := range toks {
		if tk.Kind == CharEOF {
			break
		}
		if tk.Kind != CharDash && tk.Kind != CharAsterisk && tk.Kind != CharUnderscore {
			return false
		}
		if count == 0 {
			kind = tk.Kind
		} else if tk.Kind != kind {
			return false
		}
		count++
	}
	return count >= 3
}

func hasPipe(toks []CharToken) bool {
	for _, tk := range toks {
		if tk.Kind == CharPipe {
			return true
		}
	}
	return false
}

// isTableSeparator matches the dashes/colons line under a table header row.
func isTableSeparator(text string) bool {
	if text == "" {
		return false
	}
	dashes := 0
	for _, tk := range ClassifyChars(text) {
		switch tk.Kind {
		case CharEOF:
		case CharDash:
			dashes++
		case CharPipe, CharColon, CharSpace:
		default:
			return false
		}
	}
	return dashes > 0
}

func isListLine(text string, toks []CharToken) bool {
	_, _, ok := parseListMarker(text, toks)
	return ok
}

// parseListMarker parses the indent and marker of a list item line and
// returns the attributes plus the content start offset.
func parseListMarker(text string, toks []CharToken) (*ListItemAttributes, int, bool) {
	attrs := &ListItemAttributes{}
	idx := 0
indent:
	for idx < len(toks) {
		switch toks[idx].Kind {
		case CharSpace:
			attrs.Indent++
		case CharTab:
			attrs.Indent += 4
		default:
			break indent
		}
		idx++
	}
	if idx >= len(toks) {
		return nil, 0, false
	}
	switch toks[idx].Kind {
	case CharDash, CharAsterisk:
		pos := toks[idx].Pos
		if pos+1 >= len(text) || text[pos+1] != ' ' {
			return nil, 0, false
		}
		attrs.Bullet = text[pos]
		content := pos + 2
		if task, checked, width := parseTaskMarker(text[content:]); task {
			attrs.Task = true
			attrs.Checked = checked
			content += width
		}
		return attrs, content, true
	case CharDigit:
		pos := toks[idx].Pos
		end := pos
		for end < len(text) && text[end] >= '0' && text[end] <= '9' {
			end++
		}
		if end+1 >= len(text) || text[end] != '.' || text[end+1] != ' ' {
			return nil, 0, false
		}
		number, err := strconv.Atoi(text[pos:end])
		if err != nil {
			return nil, 0, false
		}
		attrs.Ordered = true
		attrs.Number = number
		return attrs, end + 2, true
	}
	return nil, 0, false
}

func parseTaskMarker(s string) (task, checked bool, width int) {
	switch {
	case strings.HasPrefix(s, "[ ] "):
		return true, false, 4
	case strings.HasPrefix(s, "[x] "), strings.HasPrefix(s, "[X] "):
		return true, true, 4
	}
	return false, false, 0
}

func isImageLine(text string) bool {
	if !strings.HasPrefix(text, "![") {
		return false
	}
	_, _, end, ok := parseLinkBody(text, 1)
	return ok && end == len(text)
}

// parseBlockTag parses a line that consists of exactly one HTML tag.
func parseBlockTag(text string) (tag string, closing, selfClosed bool, ok bool) {
	if len(text) < 3 || text[0] != '<' || text[len(text)-1] != '>' {
		return "", false, false, false
	}
	inner := text[1 : len(text)-1]
	if strings.ContainsAny(inner, "<>") {
		return "", false, false, false
	}
	if strings.HasPrefix(inner, "/") {
		closing = true
		inner = inner[1:]
	}
	nameEnd := 0
	for nameEnd < len(inner) && (inner[nameEnd] >= 'a' && inner[nameEnd] <= 'z' ||
		inner[nameEnd] >= 'A' && inner[nameEnd] <= 'Z' ||
		inner[nameEnd] >= '0' && inner[nameEnd] <= '9') {
		nameEnd++
	}
	tag = strings.ToLower(inner[:nameEnd])
	if tag == "" {
		return "", false, false, false
	}
	if !closing && (strings.HasSuffix(inner, "/") || voidTags[tag]) {
		selfClosed = true
	}
	return tag, closing, selfClosed, true
}

func isBlockTagLine(text string) bool {
	tag, closing, selfClosed, ok := parseBlockTag(text)
	if !ok {
		return false
	}
	return selfClosed || closing || blockContainerTags[tag]
}

func (p *Parser) node(kind Kind, start, end line) *Node {
	n := newNode(p.newID(), kind)
	n.startLine = start.num
	n.endLine = end.num
	n.trailingBreaks = eolCount(end)
	return n
}

// parseBlocks parses a run of lines into sibling block nodes. The second
// result is the count of line breaks before the first node, which a
// container parent records as its inner leading breaks.
func (p *Parser) parseBlocks(lines []line) ([]*Node, int) {
	var nodes []*Node
	leading := 0

	addBreak := func() {
		if len(nodes) == 0 {
			leading++
		} else {
			nodes[len(nodes)-1].trailingBreaks++
		}
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		switch classify(lines, i) {
		case classBlank:
			addBreak()
			i++

		case classRule:
			node := p.node(HorizontalRule, ln, ln)
			node.content = ln.text
			nodes = append(nodes, node)
			i++

		case classHeading:
			level := headingLevel(ClassifyChars(ln.text))
			node := p.node(HeadingKind(level), ln, ln)
			node.content = ln.text[level+1:]
			nodes = append(nodes, node)
			i++

		case classFence:
			node, next := p.parseFence(lines, i)
			nodes = append(nodes, node)
			i = next

		case classQuote:
			node, next := p.parseBlockquote(lines, i)
			nodes = append(nodes, node)
			i = next

		case classList:
			attrs, contentStart, _ := parseListMarker(ln.text, ClassifyChars(ln.text))
			node := p.node(ListItem, ln, ln)
			node.attrs = attrs
			node.content = ln.text[contentStart:]
			nodes = append(nodes, node)
			i++

		case classTable:
			node, next := p.parseTable(lines, i)
			nodes = append(nodes, node)
			i = next

		case classImage:
			alt, dest, _, _ := parseLinkBody(ln.text, 1)
			node := p.node(Image, ln, ln)
			node.attrs = &ImageAttributes{Alt: alt, URL: dest}
			nodes = append(nodes, node)
			i++

		case classHTML:
			node, next, ok := p.parseHTMLBlock(lines, i)
			if !ok {
				// A stray closing tag is paragraph content.
				node, next = p.parseParagraph(lines, i)
			}
			nodes = append(nodes, node)
			i = next

		default:
			node, next := p.parseParagraph(lines, i)
			nodes = append(nodes, node)
			i = next
		}
	}

	return nodes, leading
}

// parseFence consumes a fenced code block opened at lines[i]. The block
// closes only at a line made entirely of backticks whose run length is at
// least the opening run length; shorter runs are literal content. An
// unterminated fence consumes the remainder of the input.
func (p *Parser) parseFence(lines []line, i int) (*Node, int) {
	open := lines[i]
	width := fenceWidth(ClassifyChars(open.text))
	attrs := &CodeAttributes{
		Language: open.text[width:],
		FenceLen: width,
	}

	j := i + 1
	for ; j < len(lines); j++ {
		if k := backtickOnlyWidth(lines[j].text); k >= width {
			attrs.CloseLen = k
			attrs.Closed = true
			break
		}
	}

	var node *Node
	if attrs.Closed {
		node = p.node(CodeBlock, open, lines[j])
		node.content = innerText(lines[i+1 : j])
		j++
	} else {
		last := open
		if j > i+1 {
			last = lines[j-1]
		}
		node = p.node(CodeBlock, open, last)
		node.content = innerText(lines[i+1 : j])
		node.trailingBreaks = 0
		if len(lines[i+1:j]) == 0 {
			// The opening line's terminator has nothing after it.
			node.trailingBreaks = eolCount(open)
		}
	}
	node.attrs = attrs
	return node, j
}

// innerText joins lines keeping each line's terminator, so the distinction
// between zero inner lines and one empty inner line survives.
func innerText(lines []line) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.text)
		if ln.hasEOL {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func backtickOnlyWidth(text string) int {
	if text == "" {
		return 0
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '`' {
			return 0
		}
	}
	return len(text)
}

func (p *Parser) parseBlockquote(lines []line, i int) (*Node, int) {
	j := i
	var content []string
	for j < len(lines) && strings.HasPrefix(lines[j].text, ">") {
		text := strings.TrimPrefix(lines[j].text, ">")
		text = strings.TrimPrefix(text, " ")
		content = append(content, text)
		j++
	}
	node := p.node(Blockquote, lines[i], lines[j-1])
	node.content = strings.Join(content, "\n")
	return node, j
}

// parseTable consumes the header row, the separator, and every following
// row. The node keeps the raw multi-line text verbatim; cell structure is
// derived on demand.
func (p *Parser) parseTable(lines []line, i int) (*Node, int) {
	j := i + 2
	for j < len(lines) && lines[j].text != "" && strings.ContainsRune(lines[j].text, '|') {
		j++
	}
	texts := make([]string, 0, j-i)
	for _, ln := range lines[i:j] {
		texts = append(texts, ln.text)
	}
	node := p.node(Table, lines[i], lines[j-1])
	node.content = strings.Join(texts, "\n")
	return node, j
}

// parseHTMLBlock handles a line that is exactly one HTML tag: a self-closed
// leaf, or a container whose children are parsed as nested blocks until the
// matching closing tag, tracking same-tag nesting depth. A container that
// never closes stays open through end of input.
func (p *Parser) parseHTMLBlock(lines []line, i int) (*Node, int, bool) {
	open := lines[i]
	tag, closing, selfClosed, _ := parseBlockTag(open.text)

	if selfClosed {
		node := p.node(HTMLBlock, open, open)
		node.attrs = &HTMLAttributes{TagName: tag, OpeningTag: open.text, SelfClosed: true}
		return node, i + 1, true
	}
	if closing || !blockContainerTags[tag] {
		return nil, 0, false
	}

	depth := 1
	j := i + 1
	for ; j < len(lines); j++ {
		t, c, s, ok := parseBlockTag(lines[j].text)
		if !ok || s || t != tag {
			continue
		}
		if c {
			depth--
			if depth == 0 {
				break
			}
		} else {
			depth++
		}
	}

	attrs := &HTMLAttributes{TagName: tag, OpeningTag: open.text}
	var node *Node
	var next int
	var children []*Node
	var innerLeading int

	if j < len(lines) {
		node = p.node(HTMLBlock, open, lines[j])
		attrs.ClosingTag = lines[j].text
		children, innerLeading = p.parseBlocks(lines[i+1 : j])
		next = j + 1
	} else {
		last := open
		if len(lines) > i+1 {
			last = lines[len(lines)-1]
		}
		node = p.node(HTMLBlock, open, last)
		node.trailingBreaks = 0
		children, innerLeading = p.parseBlocks(lines[i+1:])
		next = len(lines)
	}

	attrs.InnerBreaks = eolCount(open) + innerLeading
	node.attrs = attrs
	for _, child := range children {
		node.Append(child)
	}
	return node, next, true
}

func (p *Parser) parseParagraph(lines []line, i int) (*Node, int) {
	j := i
	var content []string
	for j < len(lines) {
		if j > i && classify(lines, j) != classText {
			break
		}
		content = append(content, lines[j].text)
		j++
	}
	node := p.node(Paragraph, lines[i], lines[j-1])
	node.content = strings.Join(content, "\n")
	return node, j
}
