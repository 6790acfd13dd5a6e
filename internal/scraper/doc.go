// Package scraper extracts festival data from the MCST festival site.
//
// ListCrawler walks the script-rendered list pages through a fetch.Navigator and
// collects one festival.ListItemRef per item. DetailParser fetches a festival's
// static detail page and turns its labelled fields into a festival.Record with
// normalized dates, region, address and absolute links.
package scraper
