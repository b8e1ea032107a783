// Package http serves the blog over HTTP.
//
// Routes:
//   - GET /health
//   - GET /blogs/{file}: raw post documents, e.g. /blogs/<slug>.mdoc
//   - GET /api/posts and /api/posts/{slug}: listing and page JSON
//   - GET /blog and /blog/{slug}: rendered HTML
//   - GET /assets/highlight.css: code highlighting stylesheet
package http
