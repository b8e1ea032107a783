package http

import (
	"html/template"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/blog"
)

type postPageView struct {
	Page        *blog.Page
	Body        template.HTML
	ListingPath string
}

type listingView struct {
	Posts       []blog.Summary
	ListingPath string
}

type errorPanelView struct {
	Message string
	Back    string
}

var postPageTemplate = template.Must(template.New("post").Parse(`<article class="blog-post">
<header>
<a class="back" href="{{.ListingPath}}">Back to Blog</a>
<h1>{{.Page.Post.Title}}</h1>
<p class="meta"><time datetime="{{.Page.Post.PublishedDate}}">{{.Page.DisplayDate}}</time>{{with .Page.Post.Author}} · {{.}}{{end}} · {{.Page.Post.ReadingTime}}</p>
{{with .Page.Post.Tags}}<ul class="tags">{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
</header>
{{if not .Page.TOC.Empty}}<nav class="toc">
<p class="toc-title">Table of Contents</p>
<ul>{{range .Page.TOC}}
<li class="toc-level-{{.Level}}"><a href="#{{.ID}}">{{.Text}}</a></li>{{end}}
</ul>
</nav>{{end}}
<div class="content">
{{.Body}}</div>
</article>
`))

var listingTemplate = template.Must(template.New("listing").Parse(`<section class="blog-listing">
<h1>Blog</h1>
{{range .Posts}}<article class="post-card{{if .Featured}} featured{{end}}">
<h2><a href="{{$.ListingPath}}/{{.Slug}}">{{.Title}}</a></h2>
<p class="meta"><time datetime="{{.PublishedDate}}">{{.DisplayDate}}</time> · {{.ReadingTime}}</p>
{{with .Excerpt}}<p class="excerpt">{{.}}</p>{{end}}
</article>
{{else}}<p class="empty">No articles yet.</p>
{{end}}</section>
`))

var errorPanelTemplate = template.Must(template.New("error").Parse(`<div class="error-panel" role="alert">
<h1>Unable to display article</h1>
<p>{{.Message}}</p>
<a href="{{.Back}}">Back to Blog</a>
</div>
`))
