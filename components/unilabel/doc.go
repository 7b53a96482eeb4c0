// Package unilabel exposes registered content types to a host over HTTP.
//
// Mounted under a base path, the handler serves one label at a time:
//
//	GET    {route}/{namespace}/labels/{id}       rendered label body
//	GET    {route}/{namespace}/labels/{id}/form  HTML settings form
//	POST   {route}/{namespace}/labels/{id}/form  save, or re-display with more slots
//	DELETE {route}/{namespace}/labels/{id}       delete the label content
//
// Unknown and inactive content types answer 404. Labels are resolved through
// a LabelResolver because the host, not the content type, owns them.
package unilabel
