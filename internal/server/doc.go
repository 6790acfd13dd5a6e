// Package server exposes a loaded festival catalog over HTTP for the web UI.
//
// Routes:
//
//	GET /health                           liveness and dataset size
//	GET /api/festivals?region=&page=&size= one page of festival cards
//	GET /api/festivals/:id                one festival card
//	GET /api/festivals/:id/calendar.ics   one festival as an iCalendar event
//	GET /api/regions                      sorted distinct regions
//	GET /api/calendar.ics?region=         every festival (of a region) as one calendar
package server
