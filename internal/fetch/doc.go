// Package fetch loads web pages as queryable goquery documents.
//
// Two strategies sit behind the same Navigator interface: Client issues a plain HTTP
// GET for static pages, and Browser drives a headless Chrome through chromedp for
// pages that only populate their content client-side. Callers query the returned
// document the same way regardless of how it was obtained; LabelValue implements the
// "find the value next to this label" lookup used on detail pages.
package fetch
