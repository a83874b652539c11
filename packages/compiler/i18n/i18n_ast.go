package i18n

import "tplc-go/packages/compiler/util"

// Node is a node of a translated message's AST.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	isI18nNode()
}

// I18nMeta is the translation metadata that template AST nodes may carry.
// It is a closed union: *Message, *Container, *TagPlaceholder, *Placeholder,
// *IcuPlaceholder and *BlockPlaceholder implement it.
type I18nMeta interface {
	isI18nMeta()
}

// MessagePlaceholder records one placeholder of a message with the source
// text it stands in for.
type MessagePlaceholder struct {
	Name string
	Text string
}

// Message is a fully assembled translatable message.
type Message struct {
	Nodes       []Node
	Meaning     string
	Description string
	CustomID    string
	// ID is the resolved message identifier (custom id or computed digest).
	ID string
	// Placeholders lists the message's placeholders in declaration order.
	Placeholders []MessagePlaceholder
}

func (m *Message) isI18nMeta() {}

// Text is a literal run of text inside a message.
type Text struct {
	Value string
	Span  *util.ParseSourceSpan
}

func (t *Text) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *Text) isI18nNode()                       {}

// Container groups a sequence of message nodes, e.g. the pieces of an
// interpolated text.
type Container struct {
	Children []Node
	Span     *util.ParseSourceSpan
}

func (c *Container) SourceSpan() *util.ParseSourceSpan { return c.Span }
func (c *Container) isI18nNode()                       {}
func (c *Container) isI18nMeta()                       {}

// Icu is an ICU expression (plural/select) inside a message.
type Icu struct {
	ExpressionPlaceholder string
	Expression            string
	Type                  string
	Span                  *util.ParseSourceSpan
}

func (i *Icu) SourceSpan() *util.ParseSourceSpan { return i.Span }
func (i *Icu) isI18nNode()                       {}

// TagPlaceholder stands in for an HTML element inside a message.
type TagPlaceholder struct {
	Tag             string
	StartName       string
	CloseName       string
	Children        []Node
	IsVoid          bool
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

func (t *TagPlaceholder) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *TagPlaceholder) isI18nNode()                       {}
func (t *TagPlaceholder) isI18nMeta()                       {}

// Placeholder stands in for one interpolated expression inside a message.
type Placeholder struct {
	Value string
	Name  string
	Span  *util.ParseSourceSpan
}

func (p *Placeholder) SourceSpan() *util.ParseSourceSpan { return p.Span }
func (p *Placeholder) isI18nNode()                       {}
func (p *Placeholder) isI18nMeta()                       {}

// IcuPlaceholder stands in for a nested ICU inside a message.
type IcuPlaceholder struct {
	Value *Icu
	Name  string
	Span  *util.ParseSourceSpan
}

func (p *IcuPlaceholder) SourceSpan() *util.ParseSourceSpan { return p.Span }
func (p *IcuPlaceholder) isI18nNode()                       {}
func (p *IcuPlaceholder) isI18nMeta()                       {}

// BlockPlaceholder stands in for a control-flow block inside a message.
type BlockPlaceholder struct {
	Name       string
	Parameters []string
	StartName  string
	CloseName  string
	Children   []Node
	Span       *util.ParseSourceSpan
}

func (p *BlockPlaceholder) SourceSpan() *util.ParseSourceSpan { return p.Span }
func (p *BlockPlaceholder) isI18nNode()                       {}
func (p *BlockPlaceholder) isI18nMeta()                       {}
