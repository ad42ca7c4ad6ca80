package vdom

// Element shorthands for common host tags. These are thin wrappers around El;
// anything not listed here can be created with El("tag", ...) directly.

// Document structure and sectioning

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }

// Text content

func P(args ...any) *VNode          { return El("p", args...) }
func Ul(args ...any) *VNode         { return El("ul", args...) }
func Ol(args ...any) *VNode         { return El("ol", args...) }
func Li(args ...any) *VNode         { return El("li", args...) }
func Pre(args ...any) *VNode        { return El("pre", args...) }
func Code(args ...any) *VNode       { return El("code", args...) }
func Blockquote(args ...any) *VNode { return El("blockquote", args...) }

// Inline and interactive

func A(args ...any) *VNode      { return El("a", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
func Label(args ...any) *VNode  { return El("label", args...) }
func Form(args ...any) *VNode   { return El("form", args...) }
func Select(args ...any) *VNode { return El("select", args...) }
func Option(args ...any) *VNode { return El("option", args...) }

// Table

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }
