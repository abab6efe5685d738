// Package httpapi provides optional HTTP adapters for the news service.
//
// Routes mount under a configurable base path (default /news):
//   - GET    /news                        list articles (page, page_size, lang)
//   - POST   /news                        create an article
//   - GET    /news/analytics              view analytics summary
//   - GET    /news/{id}                   display one article (counts a view)
//   - PUT    /news/{id}                   partial per-language update
//   - PUT    /news/{id}/translations/{lang}  set one language directly
//   - DELETE /news/{id}                   delete an article
//
// Host applications can mount the handler on their own mux/router as needed;
// patterns use Go 1.22 method routing and r.PathValue, which chi also
// populates.
package httpapi
