// Package markdown turns a post body into a render tree. It indexes the level
// two and three headings of the raw body, parses the body with goldmark
// (including the Markdoc table scope), and converts the goldmark AST into the
// package's own Node tree with heading anchors drawn from that index.
package markdown
